package models

import "time"

// Creation modes recorded in vault history.
const (
	ModeTemplate = "template"
	ModeAdopt    = "adopt"
)

// VaultRecord is one entry of the vault creation history.
type VaultRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Path           string    `json:"path"`
	Template       string    `json:"template"`
	Mode           string    `json:"mode"`
	Source         string    `json:"source,omitempty"`
	Plugins        []string  `json:"plugins"`
	ConfigChecksum string    `json:"config_checksum"`
	CreatedAt      time.Time `json:"created_at"`
}
