package manifest

import (
	"errors"

	"github.com/starford/vaultboot/internal/models"
)

var errNotBuiltin = errors.New("not in fallback table")

// FallbackTable looks up a built-in manifest by plugin id.
type FallbackTable interface {
	FallbackManifest(id string) (models.PluginManifest, bool)
}

// BuiltinResolver synthesizes manifests from a fallback table.
type BuiltinResolver struct {
	table FallbackTable
}

// NewBuiltinResolver returns a resolver over table.
func NewBuiltinResolver(table FallbackTable) *BuiltinResolver {
	return &BuiltinResolver{table: table}
}

// Name implements Resolver.
func (b *BuiltinResolver) Name() string { return "builtin" }

// Resolve implements Resolver.
func (b *BuiltinResolver) Resolve(id string) (*Bundle, error) {
	m, ok := b.table.FallbackManifest(id)
	if !ok {
		return nil, errNotBuiltin
	}
	raw, err := encode(m)
	if err != nil {
		return nil, err
	}
	return &Bundle{Manifest: m, Raw: raw, Files: map[string][]byte{}, Source: b.Name()}, nil
}
