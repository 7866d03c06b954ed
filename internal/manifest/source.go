package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/starford/vaultboot/internal/models"
	"github.com/starford/vaultboot/internal/storage"
)

var errNoSource = errors.New("no plugin source directory")

// SourceResolver copies manifests from <dir>/<id>/manifest.json together with
// any companion files found beside it.
type SourceResolver struct {
	store storage.Provider
}

// NewSourceResolver returns a resolver over dir. A missing or empty dir yields
// a resolver that never matches.
func NewSourceResolver(dir string) *SourceResolver {
	if dir == "" {
		return &SourceResolver{}
	}
	store, err := storage.NewFS(dir)
	if err != nil {
		return &SourceResolver{}
	}
	return &SourceResolver{store: store}
}

// NewSourceResolverFrom wraps an existing provider.
func NewSourceResolverFrom(store storage.Provider) *SourceResolver {
	return &SourceResolver{store: store}
}

// Name implements Resolver.
func (s *SourceResolver) Name() string { return "source" }

// Resolve implements Resolver. The manifest is rejected when it cannot be
// parsed or its id does not match the directory name.
func (s *SourceResolver) Resolve(id string) (*Bundle, error) {
	if s.store == nil {
		return nil, errNoSource
	}
	raw, err := s.store.Read(path.Join(id, ManifestFile))
	if err != nil {
		return nil, err
	}
	var m models.PluginManifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ManifestFile, err)
	}
	if m.ID != id {
		return nil, fmt.Errorf("manifest id %q does not match directory %q", m.ID, id)
	}

	files := make(map[string][]byte)
	for _, name := range CompanionFiles {
		data, err := s.store.Read(path.Join(id, name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		files[name] = data
	}
	return &Bundle{Manifest: m, Raw: raw, Files: files, Source: s.Name()}, nil
}
