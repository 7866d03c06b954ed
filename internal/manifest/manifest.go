// Package manifest resolves plugin manifests through an ordered chain of
// strategies: a plugin-template source directory first, then the built-in
// fallback table.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/starford/vaultboot/internal/apperr"
	"github.com/starford/vaultboot/internal/models"
)

// File names inside a plugin directory.
const (
	ManifestFile = "manifest.json"
	MainFile     = "main.js"
	StylesFile   = "styles.css"
	DataFile     = "data.json"
)

// CompanionFiles are copied next to a source manifest when present.
var CompanionFiles = []string{MainFile, StylesFile, DataFile}

var idRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidID reports whether id is usable as a single plugin directory name.
func ValidID(id string) bool {
	return idRe.MatchString(id)
}

// Bundle is a resolved manifest plus the files to write next to it.
type Bundle struct {
	Manifest models.PluginManifest
	// Raw is written verbatim as manifest.json.
	Raw []byte
	// Files maps companion file names to their contents.
	Files map[string][]byte
	// Source is the name of the resolver that produced the bundle.
	Source string
}

// Resolver is one manifest lookup strategy.
type Resolver interface {
	Name() string
	Resolve(id string) (*Bundle, error)
}

// Chain tries each resolver in order and returns the first bundle found.
type Chain []Resolver

// Name implements Resolver.
func (c Chain) Name() string { return "chain" }

// Resolve returns the first successful bundle. When every strategy fails the
// error wraps apperr.ErrManifestUnavailable and each strategy's cause.
func (c Chain) Resolve(id string) (*Bundle, error) {
	errs := make([]error, 0, len(c))
	for _, r := range c {
		b, err := r.Resolve(id)
		if err == nil {
			return b, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
	}
	return nil, fmt.Errorf("%w: %s: %w", apperr.ErrManifestUnavailable, id, errors.Join(errs...))
}

func encode(m models.PluginManifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// NewChain returns the standard lookup order: sourceDir, then table.
func NewChain(sourceDir string, table FallbackTable) Chain {
	return Chain{NewSourceResolver(sourceDir), NewBuiltinResolver(table)}
}
