// Package merge combines an ingested external configuration with a base
// template configuration.
package merge

import (
	"github.com/starford/vaultboot/internal/models"
)

// Merge overlays ext onto base and returns the configuration to write.
// Neither input is modified.
//
// App settings are overlaid key by key, except the attachment folder which
// stays with base when base sets one. Hotkeys are unioned with ext winning
// per command. A present external plugin list replaces the base list.
// Core plugins, workspace and plugin data always come from base.
func Merge(ext models.RawExternalConfig, base models.VaultConfig) models.VaultConfig {
	out := base.Clone()

	if app, ok := ext.App(); ok {
		out.App = mergeApp(out.App, app)
	}
	if hotkeys, ok := ext.Hotkeys(); ok {
		out.Hotkeys = overlay(out.Hotkeys, hotkeys)
	}
	if ids, ok := ext.CommunityPlugins(); ok {
		out.CommunityPlugins = ids
	}
	return out
}

func mergeApp(base, ext map[string]any) map[string]any {
	kept, hasKept := base[models.AttachmentFolderKey].(string)
	out := overlay(base, ext)
	if hasKept && kept != "" {
		out[models.AttachmentFolderKey] = kept
	}
	return out
}

// overlay copies every entry of src into dst, src winning on conflicts.
func overlay(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = models.CloneJSON(v)
	}
	return dst
}
