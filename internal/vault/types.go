package vault

import (
	"github.com/starford/vaultboot/internal/catalog"
	"github.com/starford/vaultboot/internal/models"
)

// Note describes one starter note written into a vault.
type Note struct {
	Path         string   `json:"path"`
	Title        string   `json:"title,omitempty"`
	Placeholders []string `json:"placeholders,omitempty"`
}

// Created is the outcome of building a vault.
type Created struct {
	Name           string                   `json:"name"`
	Path           string                   `json:"path"`
	Template       catalog.Template         `json:"template"`
	Notes          []Note                   `json:"notes"`
	Plugins        []models.InstalledPlugin `json:"plugins"`
	Hotkeys        []models.HotkeyEntry     `json:"hotkeys"`
	Warnings       []string                 `json:"warnings"`
	ConfigChecksum string                   `json:"config_checksum,omitempty"`
	HistoryID      string                   `json:"history_id,omitempty"`
}

// Inventory lists what an external vault has installed.
type Inventory struct {
	Plugins  []string `json:"plugins"`
	Themes   []string `json:"themes"`
	Snippets []string `json:"snippets"`
}

// Inspection is the analysis of an external vault configuration.
type Inspection struct {
	Source    string          `json:"source"`
	Inventory Inventory       `json:"inventory"`
	Analysis  models.Analysis `json:"analysis"`
}

// Adopted is the outcome of an adopt operation.
type Adopted struct {
	Created
	Inspection
}
