// Package materialize writes a vault's folder tree, starter notes,
// configuration files and plugin manifests through a storage.Provider.
//
// Writes are not transactional: when a step fails, files written by earlier
// steps are left in place.
package materialize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/starford/vaultboot/internal/apperr"
	"github.com/starford/vaultboot/internal/manifest"
	"github.com/starford/vaultboot/internal/models"
	"github.com/starford/vaultboot/internal/storage"
)

// DateToken is replaced with the current date in starter notes.
const DateToken = "{{date}}"

// DateLayout is the format substituted for DateToken.
const DateLayout = "2006-01-02"

// PluginsDir is the plugin folder relative to the vault root.
var PluginsDir = path.Join(models.ConfigDir, "plugins")

// configFiles is the write order of the fixed configuration files.
var configFiles = []string{
	models.FileApp,
	models.FileCorePlugins,
	models.FileCommunityPlugins,
	models.FileHotkeys,
	models.FileWorkspace,
}

// Materializer writes vault content below a single root.
type Materializer struct {
	store  storage.Provider
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithClock overrides the clock used for date substitution.
func WithClock(now func() time.Time) Option {
	return func(m *Materializer) { m.now = now }
}

// WithLogger sets the logger used for non-fatal warnings.
func WithLogger(l *slog.Logger) Option {
	return func(m *Materializer) { m.logger = l }
}

// New returns a Materializer writing into store.
func New(store storage.Provider, opts ...Option) *Materializer {
	m := &Materializer{store: store, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EnsureTree creates every folder, including parents. Existing folders are
// not an error.
func (m *Materializer) EnsureTree(folders []string) error {
	for _, f := range folders {
		if err := m.store.MkdirAll(f); err != nil {
			return failed(err)
		}
	}
	return nil
}

// WriteNotes writes each note, replacing DateToken with today's date.
// Existing files are overwritten.
func (m *Materializer) WriteNotes(notes map[string]string) error {
	r := strings.NewReplacer(DateToken, m.now().Format(DateLayout))
	for _, p := range sortedKeys(notes) {
		if err := m.store.Write(p, []byte(r.Replace(notes[p]))); err != nil {
			return failed(err)
		}
	}
	return nil
}

// WriteConfig writes the fixed configuration files into the config folder.
func (m *Materializer) WriteConfig(cfg models.VaultConfig) error {
	files := cfg.Files()
	for _, name := range configFiles {
		data, err := EncodeJSON(files[name])
		if err != nil {
			return failed(fmt.Errorf("encode %s: %w", name, err))
		}
		if err := m.store.Write(ConfigPath(name), data); err != nil {
			return failed(err)
		}
	}
	return nil
}

// InstallPlugins creates a directory per plugin id and writes whatever
// manifest r resolves for it. Ids that are not a single safe path segment are
// skipped. A plugin without a manifest is still installed and reported in the
// returned warnings.
func (m *Materializer) InstallPlugins(ids []string, r manifest.Resolver) ([]models.InstalledPlugin, []string, error) {
	installed := make([]models.InstalledPlugin, 0, len(ids))
	var warnings []string

	for _, id := range ids {
		if !manifest.ValidID(id) {
			warnings = append(warnings, fmt.Sprintf("skipped plugin %q: invalid id", id))
			m.logger.Warn("materialize: invalid plugin id", slog.String("plugin", id))
			continue
		}
		dir := path.Join(PluginsDir, id)
		if err := m.store.MkdirAll(dir); err != nil {
			return installed, warnings, failed(err)
		}

		b, err := r.Resolve(id)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("plugin %q installed without manifest", id))
			m.logger.Warn("materialize: manifest unavailable",
				slog.String("plugin", id),
				slog.String("error", err.Error()))
			installed = append(installed, models.InstalledPlugin{ID: id})
			continue
		}

		if err := m.store.Write(path.Join(dir, manifest.ManifestFile), b.Raw); err != nil {
			return installed, warnings, failed(err)
		}
		for _, name := range sortedKeys(b.Files) {
			if err := m.store.Write(path.Join(dir, name), b.Files[name]); err != nil {
				return installed, warnings, failed(err)
			}
		}
		installed = append(installed, models.InstalledPlugin{ID: id, Source: b.Source})
	}
	return installed, warnings, nil
}

// ConfigPath returns the path of a config file relative to the vault root.
func ConfigPath(name string) string {
	return path.Join(models.ConfigDir, name+".json")
}

// EncodeJSON renders v as two-space indented JSON without HTML escaping.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func failed(err error) error {
	return fmt.Errorf("%w: %w", apperr.ErrMaterializationFailed, err)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
