// Package models defines the domain types shared by the vault engine.
package models

// ConfigDir is the configuration subfolder of every vault.
const ConfigDir = ".obsidian"

// Configuration file base names, as they appear in ConfigDir without ".json".
const (
	FileApp              = "app"
	FileAppearance       = "appearance"
	FileCorePlugins      = "core-plugins"
	FileCommunityPlugins = "community-plugins"
	FileHotkeys          = "hotkeys"
	FileWorkspace        = "workspace"
)

// AttachmentFolderKey is the app setting that locates the vault's attachments.
const AttachmentFolderKey = "attachmentFolderPath"

// PluginManifest is the descriptor the host application needs to recognise a plugin.
type PluginManifest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Version       string `json:"version"`
	Description   string `json:"description"`
	MinAppVersion string `json:"minAppVersion"`
	Author        string `json:"author"`
	AuthorURL     string `json:"authorUrl,omitempty"`
	HelpURL       string `json:"helpUrl,omitempty"`
	IsDesktopOnly bool   `json:"isDesktopOnly"`
}

// VaultConfig is the set of configuration files materialized into ConfigDir.
// It is both the output of a base template and the result of a merge.
type VaultConfig struct {
	App              map[string]any `json:"app"`
	CorePlugins      any            `json:"core-plugins"`
	CommunityPlugins []string       `json:"community-plugins"`
	Hotkeys          map[string]any `json:"hotkeys"`
	Workspace        map[string]any `json:"workspace"`
}

// Files returns the config contents keyed by file base name.
func (c VaultConfig) Files() map[string]any {
	plugins := c.CommunityPlugins
	if plugins == nil {
		plugins = []string{}
	}
	return map[string]any{
		FileApp:              nonNilMap(c.App),
		FileCorePlugins:      c.CorePlugins,
		FileCommunityPlugins: plugins,
		FileHotkeys:          nonNilMap(c.Hotkeys),
		FileWorkspace:        nonNilMap(c.Workspace),
	}
}

// Clone returns a deep copy of c.
func (c VaultConfig) Clone() VaultConfig {
	return VaultConfig{
		App:              CloneMap(c.App),
		CorePlugins:      CloneJSON(c.CorePlugins),
		CommunityPlugins: cloneStrings(c.CommunityPlugins),
		Hotkeys:          CloneMap(c.Hotkeys),
		Workspace:        CloneMap(c.Workspace),
	}
}

// HotkeyMap implements the analyzer source contract.
func (c VaultConfig) HotkeyMap() map[string]any { return c.Hotkeys }

// CommunityPluginIDs implements the analyzer source contract.
func (c VaultConfig) CommunityPluginIDs() []string { return c.CommunityPlugins }

// CorePluginEnabled implements the analyzer source contract.
func (c VaultConfig) CorePluginEnabled(id string) bool {
	return corePluginEnabled(c.CorePlugins, id)
}

func nonNilMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// InstalledPlugin records one plugin directory created in a vault. Source
// names the resolver that supplied the manifest and is empty when no
// manifest could be written.
type InstalledPlugin struct {
	ID     string `json:"id"`
	Source string `json:"source,omitempty"`
}

// HasManifest reports whether a manifest was written for the plugin.
func (p InstalledPlugin) HasManifest() bool { return p.Source != "" }
