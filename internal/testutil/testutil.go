// Package testutil provides shared test helpers for catalogs, source vaults,
// fetchers and history databases.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/starford/vaultboot/internal/catalog"
	"github.com/starford/vaultboot/internal/history"
	"github.com/starford/vaultboot/internal/storage"
)

// TestCatalog returns the embedded default catalog.
func TestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// TestHistory creates a temporary history database that is closed on cleanup.
func TestHistory(t *testing.T) *history.DB {
	t.Helper()
	db, err := history.Open(filepath.Join(t.TempDir(), "vaultboot-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestVault creates a temporary directory with a storage.Provider.
func TestVault(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// SourceVault writes files (relative path -> content) into a new temporary
// directory and returns it.
func SourceVault(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, body := range files {
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// ObsidianSource is a small external vault configuration used across tests.
var ObsidianSource = map[string]string{
	".obsidian/app.json":                   `{"attachmentFolderPath":"files","vimMode":true}`,
	".obsidian/core-plugins.json":          `{"daily-notes":true,"graph":false}`,
	".obsidian/community-plugins.json":     `["dataview","obsidian-kanban"]`,
	".obsidian/hotkeys.json":               `{"editor:toggle-bold":[{"modifiers":["Mod"],"key":"B"}]}`,
	".obsidian/plugins/dataview/data.json": `{"secret":"do-not-copy"}`,
	".obsidian/themes/Minimal.css":         "",
	".obsidian/snippets/wide.css":          "",
}

// StaticFetcher returns a fixed directory for every URL and records releases.
// Dir is never removed.
type StaticFetcher struct {
	Dir string
	Err error

	mu       sync.Mutex
	fetched  []string
	released []string
}

// Fetch implements ingest.Fetcher.
func (f *StaticFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, url)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Dir, nil
}

// Release implements ingest.Fetcher.
func (f *StaticFetcher) Release(dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, dir)
	return nil
}

// Fetched returns the URLs requested so far.
func (f *StaticFetcher) Fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

// Released returns the directories released so far.
func (f *StaticFetcher) Released() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.released...)
}
