// Package catalog holds the read-only template registry, starter notes,
// per-template plugin selections and the fallback manifest table.
//
// A Catalog is built once at startup and never mutated; every accessor
// returns fresh copies, so a single *Catalog can be shared by concurrent
// vault operations.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/starford/vaultboot/internal/apperr"
	"github.com/starford/vaultboot/internal/models"
	"github.com/starford/vaultboot/internal/storage"
)

// TemplaterPluginID is the template-insertion plugin every vault gets.
const TemplaterPluginID = "templater-obsidian"

// DefaultTemplate is the base template used by adopt mode when none is given.
const DefaultTemplate = "minimal"

//go:embed defaults/*.json
var defaultsFS embed.FS

//go:embed notes
var notesFS embed.FS

// Catalog is the immutable set of templates and plugin tables.
type Catalog struct {
	templates []Template
	byKey     map[string]int
	notes     map[string]map[string]string
	plugins   map[string][]string
	manifests map[string]models.PluginManifest

	baseApp     []byte
	corePlugins []byte
	hotkeys     []byte
	workspace   []byte

	pluginSourceDir string
}

// Default returns a catalog built from the embedded defaults only.
func Default() (*Catalog, error) {
	return Load("")
}

// Load builds a catalog from the embedded defaults. When dir is non-empty it
// is treated as a templates directory: configs/base-app.json,
// configs/core-plugins.json and configs/base-plugins.json replace the
// embedded equivalents when present, and dir/plugins becomes the
// plugin-template source for manifest copies.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{
		templates: make([]Template, 0, len(builtinTemplates)),
		byKey:     make(map[string]int, len(builtinTemplates)),
	}

	for _, t := range builtinTemplates {
		if err := validateTemplate(t); err != nil {
			return nil, err
		}
		if _, dup := c.byKey[t.Key]; dup {
			return nil, fmt.Errorf("catalog: duplicate template key %q", t.Key)
		}
		c.byKey[t.Key] = len(c.templates)
		c.templates = append(c.templates, t.clone())
	}

	var err error
	if c.baseApp, err = loadJSON(dir, "configs/base-app.json", "defaults/app.json"); err != nil {
		return nil, err
	}
	if c.corePlugins, err = loadJSON(dir, "configs/core-plugins.json", "defaults/core-plugins.json"); err != nil {
		return nil, err
	}
	if c.hotkeys, err = loadJSON(dir, "", "defaults/hotkeys.json"); err != nil {
		return nil, err
	}
	if c.workspace, err = loadJSON(dir, "", "defaults/workspace.json"); err != nil {
		return nil, err
	}

	pluginsRaw, err := loadJSON(dir, "configs/base-plugins.json", "defaults/plugins.json")
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(pluginsRaw, &c.plugins); err != nil {
		return nil, fmt.Errorf("catalog: parse plugin table: %w", err)
	}

	manifestsRaw, err := defaultsFS.ReadFile("defaults/manifests.json")
	if err != nil {
		return nil, fmt.Errorf("catalog: read manifests: %w", err)
	}
	var list []models.PluginManifest
	if err := json.Unmarshal(manifestsRaw, &list); err != nil {
		return nil, fmt.Errorf("catalog: parse manifests: %w", err)
	}
	c.manifests = make(map[string]models.PluginManifest, len(list))
	for _, m := range list {
		if m.ID == "" {
			return nil, fmt.Errorf("catalog: fallback manifest without id")
		}
		c.manifests[m.ID] = m
	}

	if c.notes, err = loadNotes(); err != nil {
		return nil, err
	}
	if err := c.checkNotes(); err != nil {
		return nil, err
	}

	if dir != "" {
		c.pluginSourceDir = filepath.Join(dir, "plugins")
	}
	return c, nil
}

// Resolve returns the template registered under key. The match is exact.
func (c *Catalog) Resolve(key string) (Template, error) {
	i, ok := c.byKey[key]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", apperr.ErrUnknownTemplate, key)
	}
	return c.templates[i].clone(), nil
}

// Templates returns every template in declaration order.
func (c *Catalog) Templates() []Template {
	out := make([]Template, len(c.templates))
	for i, t := range c.templates {
		out[i] = t.clone()
	}
	return out
}

// Keys returns the template keys in declaration order.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.templates))
	for i, t := range c.templates {
		out[i] = t.Key
	}
	return out
}

// Notes returns the starter notes for key, relative path -> content.
func (c *Catalog) Notes(key string) map[string]string {
	out := make(map[string]string, len(c.notes[key]))
	for p, body := range c.notes[key] {
		out[p] = body
	}
	return out
}

// SelectPlugins returns the ordered plugin ids for key. Unmapped keys yield
// only the template-insertion plugin, which is always present exactly once.
func (c *Catalog) SelectPlugins(key string) []string {
	listed := c.plugins[key]
	out := make([]string, 0, len(listed)+1)
	seen := make(map[string]struct{}, len(listed)+1)
	for _, id := range listed {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if _, ok := seen[TemplaterPluginID]; !ok {
		out = append(out, TemplaterPluginID)
	}
	return out
}

// FallbackManifest returns the built-in manifest for a well-known plugin id.
func (c *Catalog) FallbackManifest(id string) (models.PluginManifest, bool) {
	m, ok := c.manifests[id]
	return m, ok
}

// PluginSourceDir is the plugin-template source directory, or "" when the
// catalog was built without a templates directory.
func (c *Catalog) PluginSourceDir() string {
	return c.pluginSourceDir
}

// BaseConfig computes the configuration the template identified by key
// produces. Each call decodes fresh values.
func (c *Catalog) BaseConfig(key string) models.VaultConfig {
	cfg := models.VaultConfig{
		CommunityPlugins: c.SelectPlugins(key),
	}
	// The raw documents were validated in Load, so decoding cannot fail.
	_ = json.Unmarshal(c.baseApp, &cfg.App)
	_ = json.Unmarshal(c.corePlugins, &cfg.CorePlugins)
	_ = json.Unmarshal(c.hotkeys, &cfg.Hotkeys)
	_ = json.Unmarshal(c.workspace, &cfg.Workspace)
	return cfg
}

func validateTemplate(t Template) error {
	if t.Key == "" {
		return fmt.Errorf("catalog: template without key")
	}
	seen := make(map[string]struct{}, len(t.Folders))
	for _, f := range t.Folders {
		clean, err := storage.CleanRel(f)
		if err != nil {
			return fmt.Errorf("catalog: template %q: %w", t.Key, err)
		}
		if _, dup := seen[clean]; dup {
			return fmt.Errorf("catalog: template %q: duplicate folder %q", t.Key, f)
		}
		seen[clean] = struct{}{}
	}
	return nil
}

// loadJSON reads override from dir when present, else the embedded fallback.
// Both sources must hold valid JSON.
func loadJSON(dir, override, fallback string) ([]byte, error) {
	if dir != "" && override != "" {
		data, err := os.ReadFile(filepath.Join(dir, override))
		switch {
		case err == nil:
			if !json.Valid(data) {
				return nil, fmt.Errorf("catalog: %s is not valid JSON", override)
			}
			return data, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("catalog: read %s: %w", override, err)
		}
	}
	data, err := defaultsFS.ReadFile(fallback)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", fallback, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("catalog: %s is not valid JSON", fallback)
	}
	return data, nil
}

// checkNotes requires every starter note to sit at the vault root or in a
// folder its template declares.
func (c *Catalog) checkNotes() error {
	for key, notes := range c.notes {
		i, ok := c.byKey[key]
		if !ok {
			return fmt.Errorf("catalog: notes for unknown template %q", key)
		}
		declared := make(map[string]bool, len(c.templates[i].Folders))
		for _, f := range c.templates[i].Folders {
			declared[f] = true
		}
		for notePath := range notes {
			if dir := path.Dir(notePath); dir != "." && !declared[dir] {
				return fmt.Errorf("catalog: template %q note %q is outside its folders", key, notePath)
			}
		}
	}
	return nil
}

// loadNotes indexes notes/<template>/<relative path> from the embedded tree.
func loadNotes() (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	err := fs.WalkDir(notesFS, "notes", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(p, "notes/")
		key, notePath, ok := strings.Cut(rel, "/")
		if !ok {
			return nil
		}
		data, err := notesFS.ReadFile(p)
		if err != nil {
			return err
		}
		if out[key] == nil {
			out[key] = make(map[string]string)
		}
		out[key][path.Clean(notePath)] = string(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: load notes: %w", err)
	}
	return out, nil
}
