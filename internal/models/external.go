package models

// ExternalConfigFiles lists, in read order, the configuration files ingested
// from an external vault.
var ExternalConfigFiles = []string{
	FileApp,
	FileAppearance,
	FileCorePlugins,
	FileCommunityPlugins,
	FileHotkeys,
	FileWorkspace,
}

// RawExternalConfig is a vault configuration read from an external source.
// When Error is non-empty every other field is empty and must not be used.
type RawExternalConfig struct {
	Files    map[string]any `json:"files"`
	Plugins  []string       `json:"plugins"`
	Themes   []string       `json:"themes"`
	Snippets []string       `json:"snippets"`
	Error    string         `json:"error,omitempty"`

	// HotkeyCommands lists the hotkeys.json keys in file order.
	HotkeyCommands []string `json:"-"`
}

// FailedConfig returns an empty configuration carrying msg as its error.
func FailedConfig(msg string) RawExternalConfig {
	return RawExternalConfig{
		Files:    map[string]any{},
		Plugins:  []string{},
		Themes:   []string{},
		Snippets: []string{},
		Error:    msg,
	}
}

// Failed reports whether ingestion failed.
func (c RawExternalConfig) Failed() bool { return c.Error != "" }

// App returns the external app settings, if the file was present and an object.
func (c RawExternalConfig) App() (map[string]any, bool) {
	m, ok := c.Files[FileApp].(map[string]any)
	return m, ok
}

// Hotkeys returns the external hotkey map, if present.
func (c RawExternalConfig) Hotkeys() (map[string]any, bool) {
	m, ok := c.Files[FileHotkeys].(map[string]any)
	return m, ok
}

// CommunityPlugins returns the external enabled plugin list, if present.
// Non-string entries are dropped.
func (c RawExternalConfig) CommunityPlugins() ([]string, bool) {
	raw, ok := c.Files[FileCommunityPlugins].([]any)
	if !ok {
		if ids, typed := c.Files[FileCommunityPlugins].([]string); typed {
			return cloneStrings(ids), true
		}
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// HotkeyMap implements the analyzer source contract.
func (c RawExternalConfig) HotkeyMap() map[string]any {
	m, _ := c.Hotkeys()
	return m
}

// HotkeyOrder implements the analyzer ordered source contract.
func (c RawExternalConfig) HotkeyOrder() []string { return c.HotkeyCommands }

// CommunityPluginIDs implements the analyzer source contract.
func (c RawExternalConfig) CommunityPluginIDs() []string {
	ids, _ := c.CommunityPlugins()
	return ids
}

// CorePluginEnabled implements the analyzer source contract.
func (c RawExternalConfig) CorePluginEnabled(id string) bool {
	return corePluginEnabled(c.Files[FileCorePlugins], id)
}

// corePluginEnabled understands both core-plugins.json layouts: an object of
// id -> bool flags, and the newer array of enabled ids.
func corePluginEnabled(v any, id string) bool {
	switch core := v.(type) {
	case map[string]any:
		on, _ := core[id].(bool)
		return on
	case map[string]bool:
		return core[id]
	case []any:
		for _, item := range core {
			if s, ok := item.(string); ok && s == id {
				return true
			}
		}
	case []string:
		for _, s := range core {
			if s == id {
				return true
			}
		}
	}
	return false
}
