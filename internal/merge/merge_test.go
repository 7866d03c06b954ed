package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/starford/vaultboot/internal/models"
)

func baseConfig() models.VaultConfig {
	return models.VaultConfig{
		App: map[string]any{
			"attachmentFolderPath": "attachments",
			"showLineNumber":       true,
		},
		CorePlugins:      map[string]any{"graph": true},
		CommunityPlugins: []string{"dataview", "templater-obsidian"},
		Hotkeys: map[string]any{
			"cmd:a": []any{map[string]any{"modifiers": []any{"Mod"}, "key": "X"}},
		},
		Workspace: map[string]any{"active": "base"},
	}
}

func TestMerge_AttachmentFolderKeptFromBase(t *testing.T) {
	ext := models.RawExternalConfig{Files: map[string]any{
		models.FileApp: map[string]any{"attachmentFolderPath": "files", "vimMode": true},
	}}

	got := Merge(ext, baseConfig())
	assert.Equal(t, "attachments", got.App["attachmentFolderPath"])
	assert.Equal(t, true, got.App["vimMode"])
	assert.Equal(t, true, got.App["showLineNumber"])
}

func TestMerge_AttachmentFolderTakenWhenBaseLacksIt(t *testing.T) {
	base := baseConfig()
	delete(base.App, "attachmentFolderPath")
	ext := models.RawExternalConfig{Files: map[string]any{
		models.FileApp: map[string]any{"attachmentFolderPath": "files"},
	}}

	got := Merge(ext, base)
	assert.Equal(t, "files", got.App["attachmentFolderPath"])

	base.App["attachmentFolderPath"] = ""
	got = Merge(ext, base)
	assert.Equal(t, "files", got.App["attachmentFolderPath"])
}

func TestMerge_HotkeyUnionExternalWins(t *testing.T) {
	y := []any{map[string]any{"modifiers": []any{"Alt"}, "key": "Y"}}
	z := []any{map[string]any{"modifiers": []any{}, "key": "Z"}}
	ext := models.RawExternalConfig{Files: map[string]any{
		models.FileHotkeys: map[string]any{"cmd:a": y, "cmd:b": z},
	}}

	got := Merge(ext, baseConfig())
	assert.Equal(t, map[string]any{"cmd:a": y, "cmd:b": z}, got.Hotkeys)
}

func TestMerge_PluginListReplacedOutright(t *testing.T) {
	ext := models.RawExternalConfig{Files: map[string]any{
		models.FileCommunityPlugins: []any{"obsidian-kanban", "calendar"},
	}}

	got := Merge(ext, baseConfig())
	assert.Equal(t, []string{"obsidian-kanban", "calendar"}, got.CommunityPlugins)
}

func TestMerge_AbsentFilesKeepBase(t *testing.T) {
	base := baseConfig()
	got := Merge(models.RawExternalConfig{Files: map[string]any{
		models.FileWorkspace:   map[string]any{"active": "external"},
		models.FileCorePlugins: map[string]any{"graph": false},
	}}, base)

	assert.Equal(t, base, got)
}

func TestMerge_InputsUntouched(t *testing.T) {
	base := baseConfig()
	extApp := map[string]any{"nested": map[string]any{"k": "v"}}
	ext := models.RawExternalConfig{Files: map[string]any{
		models.FileApp:              extApp,
		models.FileCommunityPlugins: []any{"calendar"},
	}}

	got := Merge(ext, base)
	got.App["nested"].(map[string]any)["k"] = "changed"
	got.CommunityPlugins[0] = "changed"

	assert.Equal(t, baseConfig(), base)
	assert.Equal(t, "v", extApp["nested"].(map[string]any)["k"])
	_, leaked := base.App["nested"]
	assert.False(t, leaked)
}

func genConfig() *rapid.Generator[models.VaultConfig] {
	return rapid.Custom(func(t *rapid.T) models.VaultConfig {
		app := rapid.MapOf(rapid.StringMatching(`[a-z]{1,6}`), rapid.StringMatching(`[a-z]{0,4}`)).Draw(t, "app")
		hotkeys := rapid.MapOf(rapid.StringMatching(`cmd:[a-z]{1,3}`), rapid.StringMatching(`[A-Z]`)).Draw(t, "hotkeys")
		plugins := rapid.SliceOf(rapid.SampledFrom([]string{"dataview", "quickadd", "calendar", "templater-obsidian"})).Draw(t, "plugins")

		cfg := models.VaultConfig{
			App:              map[string]any{},
			Hotkeys:          map[string]any{},
			CommunityPlugins: plugins,
			CorePlugins:      map[string]any{"graph": true},
			Workspace:        map[string]any{},
		}
		for k, v := range app {
			cfg.App[k] = v
		}
		for k, v := range hotkeys {
			cfg.Hotkeys[k] = []any{map[string]any{"modifiers": []any{"Mod"}, "key": v}}
		}
		return cfg
	})
}

func TestMerge_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := genConfig().Draw(rt, "cfg")
		ext := models.RawExternalConfig{Files: cfg.Clone().Files()}

		once := Merge(ext, cfg)
		twice := Merge(ext, once)
		require.Equal(rt, once, twice)
		require.Equal(rt, len(cfg.CommunityPlugins), len(twice.CommunityPlugins))
	})
}

func TestMerge_ExternalPluginsAlwaysVerbatim(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := genConfig().Draw(rt, "base")
		ids := rapid.SliceOf(rapid.StringMatching(`[a-z][a-z-]{0,10}`)).Draw(rt, "ids")
		raw := make([]any, len(ids))
		for i, id := range ids {
			raw[i] = id
		}

		got := Merge(models.RawExternalConfig{Files: map[string]any{models.FileCommunityPlugins: raw}}, base)
		require.Equal(rt, append([]string{}, ids...), got.CommunityPlugins)
	})
}
