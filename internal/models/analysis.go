package models

// HotkeyEntry is a human-readable view of one configured hotkey.
type HotkeyEntry struct {
	Command     string `json:"command"`
	Keys        string `json:"keys"`
	Description string `json:"description"`
}

// WorkflowPattern is an advisory workflow detected from plugins and settings.
type WorkflowPattern struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

// Analysis is the result of inspecting a vault configuration.
type Analysis struct {
	Hotkeys         []HotkeyEntry     `json:"hotkeys"`
	Workflows       []WorkflowPattern `json:"workflows"`
	Recommendations []string          `json:"recommendations"`
}
