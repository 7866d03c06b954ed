// Package ingest reads an existing vault's configuration folder into a
// models.RawExternalConfig, optionally fetching the vault first.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/starford/vaultboot/internal/models"
	"github.com/starford/vaultboot/internal/storage"
)

// Fetcher retrieves a source repository into a local directory. Every
// directory returned by Fetch must be handed back to Release.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	Release(dir string) error
}

// Ingester fetches remote vaults and reads their configuration.
type Ingester struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// New returns an Ingester using fetcher for retrieval.
func New(fetcher Fetcher, logger *slog.Logger) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingester{fetcher: fetcher, logger: logger}
}

// Ingest fetches url and reads its configuration. Failures are reported in
// the result's Error field. The fetched directory is released on every path.
func (i *Ingester) Ingest(ctx context.Context, url string) models.RawExternalConfig {
	dir, err := i.fetcher.Fetch(ctx, url)
	if err != nil {
		i.logger.Warn("ingest: fetch failed", slog.String("url", url), slog.String("error", err.Error()))
		return models.FailedConfig(fmt.Sprintf("failed to fetch %s: %v", url, err))
	}
	defer func() {
		if err := i.fetcher.Release(dir); err != nil {
			i.logger.Warn("ingest: release failed", slog.String("path", dir), slog.String("error", err.Error()))
		}
	}()

	cfg := ReadDir(dir)
	if cfg.Failed() {
		i.logger.Warn("ingest: read failed", slog.String("url", url), slog.String("error", cfg.Error))
	}
	return cfg
}

// ReadDir reads the configuration folder of the vault rooted at root. Missing
// configuration files are omitted. A missing configuration folder or a
// malformed file fails the whole read.
func ReadDir(root string) models.RawExternalConfig {
	store, err := storage.NewFS(root)
	if err != nil {
		return models.FailedConfig(fmt.Sprintf("cannot open %s: %v", root, err))
	}
	return Read(store)
}

// Read is ReadDir over an existing provider.
func Read(store storage.Provider) models.RawExternalConfig {
	if !store.Exists(models.ConfigDir) {
		return models.FailedConfig(fmt.Sprintf("no %s configuration folder found", models.ConfigDir))
	}

	files := make(map[string]any, len(models.ExternalConfigFiles))
	var hotkeyOrder []string
	for _, name := range models.ExternalConfigFiles {
		data, err := store.Read(path.Join(models.ConfigDir, name+".json"))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return models.FailedConfig(fmt.Sprintf("cannot read %s.json: %v", name, err))
		}
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return models.FailedConfig(fmt.Sprintf("malformed %s.json: %v", name, err))
		}
		files[name] = v
		if name == models.FileHotkeys {
			hotkeyOrder = objectKeys(data)
		}
	}

	plugins, err := listEntries(store, path.Join(models.ConfigDir, "plugins"), true)
	if err != nil {
		return models.FailedConfig(err.Error())
	}
	snippets, err := listEntries(store, path.Join(models.ConfigDir, "snippets"), false)
	if err != nil {
		return models.FailedConfig(err.Error())
	}
	themes, err := listThemes(store)
	if err != nil {
		return models.FailedConfig(err.Error())
	}

	return models.RawExternalConfig{
		Files:          files,
		Plugins:        plugins,
		Themes:         themes,
		Snippets:       snippets,
		HotkeyCommands: hotkeyOrder,
	}
}

// objectKeys returns the top-level keys of a JSON object in document order,
// or nil when data is not an object.
func objectKeys(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil
		}
		keys = append(keys, key)
	}
	return keys
}

// listEntries returns the names of directories (dirs=true) or files inside
// dir, or an empty list when dir is absent.
func listEntries(store storage.Provider, dir string, dirs bool) ([]string, error) {
	out := []string{}
	if !store.Exists(dir) {
		return out, nil
	}
	entries, err := store.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() == dirs {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func listThemes(store storage.Provider) ([]string, error) {
	matches, err := store.Glob(path.Join(models.ConfigDir, "themes", "*.css"))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSuffix(path.Base(m), ".css"))
	}
	return out, nil
}
