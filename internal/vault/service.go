// Package vault coordinates template resolution, ingestion, merging and
// materialization into the create, adopt and analyze operations.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/starford/vaultboot/internal/analyzer"
	"github.com/starford/vaultboot/internal/apperr"
	"github.com/starford/vaultboot/internal/catalog"
	"github.com/starford/vaultboot/internal/checksum"
	"github.com/starford/vaultboot/internal/ingest"
	"github.com/starford/vaultboot/internal/manifest"
	"github.com/starford/vaultboot/internal/materialize"
	"github.com/starford/vaultboot/internal/merge"
	"github.com/starford/vaultboot/internal/models"
	"github.com/starford/vaultboot/internal/parser"
	"github.com/starford/vaultboot/internal/storage"
)

// Ingester reads an external vault configuration from a source locator.
type Ingester interface {
	Ingest(ctx context.Context, url string) models.RawExternalConfig
}

// Recorder persists vault creation history.
type Recorder interface {
	Record(ctx context.Context, r models.VaultRecord) (models.VaultRecord, error)
	List(ctx context.Context, limit int) ([]models.VaultRecord, error)
}

// Notifier is told about every vault the service writes.
type Notifier interface {
	VaultWritten(r models.VaultRecord)
}

// Service runs vault operations. It holds no per-call state and is safe for
// concurrent use.
type Service struct {
	catalog       *catalog.Catalog
	resolver      manifest.Resolver
	ingester      Ingester
	recorder      Recorder
	notifier      Notifier
	home          string
	defaultParent string
	now           func() time.Time
	logger        *slog.Logger
}

// NewService creates a vault service over cat.
func NewService(cat *catalog.Catalog, opts ...Option) *Service {
	home, _ := os.UserHomeDir()
	s := &Service{
		catalog:       cat,
		home:          home,
		defaultParent: DefaultParent,
		now:           time.Now,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.resolver == nil {
		s.resolver = manifest.NewChain(cat.PluginSourceDir(), cat)
	}
	return s
}

// Templates lists the registry in declaration order.
func (s *Service) Templates() []catalog.Template {
	return s.catalog.Templates()
}

// Template resolves one template by key.
func (s *Service) Template(key string) (catalog.Template, error) {
	return s.catalog.Resolve(key)
}

// Create builds a fresh vault from a template.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Created, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	tpl, err := s.catalog.Resolve(req.Template)
	if err != nil {
		return nil, err
	}
	target, err := s.target(req.Path, req.Name)
	if err != nil {
		return nil, err
	}

	created, err := s.build(target, req.Name, tpl, s.catalog.BaseConfig(tpl.Key))
	if err != nil {
		return nil, err
	}
	created.HistoryID = s.record(ctx, created, models.ModeTemplate, "")
	s.logger.Info("vault: created",
		slog.String("path", created.Path),
		slog.String("template", tpl.Key),
		slog.Int("plugins", len(created.Plugins)))
	return created, nil
}

// Adopt fetches an external configuration, merges it over a base template
// and builds the vault. Nothing is written when retrieval fails.
func (s *Service) Adopt(ctx context.Context, req AdoptRequest) (*Adopted, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	tpl, err := s.catalog.Resolve(req.BaseTemplate)
	if err != nil {
		return nil, err
	}
	target, err := s.target(req.Path, req.Name)
	if err != nil {
		return nil, err
	}

	ext, err := s.ingest(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	merged := merge.Merge(ext, s.catalog.BaseConfig(tpl.Key))
	created, err := s.build(target, req.Name, tpl, merged)
	if err != nil {
		return nil, err
	}
	created.HistoryID = s.record(ctx, created, models.ModeAdopt, req.URL)
	s.logger.Info("vault: adopted",
		slog.String("path", created.Path),
		slog.String("source", req.URL),
		slog.String("template", tpl.Key))

	return &Adopted{
		Created:    *created,
		Inspection: inspect(req.URL, ext),
	}, nil
}

// Analyze fetches an external configuration and reports on it without
// writing anything.
func (s *Service) Analyze(ctx context.Context, url string) (*Inspection, error) {
	if err := invalid(sourceURL(url)); err != nil {
		return nil, err
	}
	ext, err := s.ingest(ctx, url)
	if err != nil {
		return nil, err
	}
	in := inspect(url, ext)
	return &in, nil
}

// AnalyzeLocal reports on a vault already present on disk.
func (s *Service) AnalyzeLocal(dir string) (*Inspection, error) {
	store, err := storage.NewFS(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	ext := ingest.Read(store)
	if ext.Failed() {
		return nil, fmt.Errorf("%w: %s", apperr.ErrRetrievalFailed, ext.Error)
	}
	in := inspect(dir, ext)
	return &in, nil
}

// History lists recorded vaults, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]models.VaultRecord, error) {
	if s.recorder == nil {
		return []models.VaultRecord{}, nil
	}
	return s.recorder.List(ctx, limit)
}

// target resolves the vault directory and rejects existing destinations.
func (s *Service) target(parent, name string) (string, error) {
	dir := filepath.Join(ResolveParent(parent, s.home, s.defaultParent), name)
	if _, err := os.Lstat(dir); err == nil {
		return "", fmt.Errorf("%w: %s", apperr.ErrTargetAlreadyExists, dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %w", apperr.ErrMaterializationFailed, err)
	}
	return dir, nil
}

func (s *Service) ingest(ctx context.Context, url string) (models.RawExternalConfig, error) {
	if s.ingester == nil {
		return models.RawExternalConfig{}, fmt.Errorf("%w: no fetcher configured", apperr.ErrRetrievalFailed)
	}
	ext := s.ingester.Ingest(ctx, url)
	if ext.Failed() {
		return ext, fmt.Errorf("%w: %s", apperr.ErrRetrievalFailed, ext.Error)
	}
	return ext, nil
}

// build writes the folder tree, starter notes, configuration and plugins.
func (s *Service) build(target, name string, tpl catalog.Template, cfg models.VaultConfig) (*Created, error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create parent: %w", apperr.ErrMaterializationFailed, err)
	}
	if err := os.Mkdir(target, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", apperr.ErrTargetAlreadyExists, target)
		}
		return nil, fmt.Errorf("%w: %w", apperr.ErrMaterializationFailed, err)
	}
	store, err := storage.NewFS(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrMaterializationFailed, err)
	}

	m := materialize.New(store, materialize.WithClock(s.now), materialize.WithLogger(s.logger))
	notes := s.catalog.Notes(tpl.Key)

	if err := m.EnsureTree(tpl.Folders); err != nil {
		return nil, err
	}
	if err := m.WriteNotes(notes); err != nil {
		return nil, err
	}
	if err := m.WriteConfig(cfg); err != nil {
		return nil, err
	}
	plugins, warnings, err := m.InstallPlugins(cfg.CommunityPlugins, s.resolver)
	if err != nil {
		return nil, err
	}

	sum, err := checksum.File(store, materialize.ConfigPath(models.FileApp))
	if err != nil {
		s.logger.Warn("vault: checksum failed", slog.String("path", target), slog.String("error", err.Error()))
	}

	return &Created{
		Name:           name,
		Path:           store.Root(),
		Template:       tpl,
		Notes:          describeNotes(notes),
		Plugins:        plugins,
		Hotkeys:        analyzer.Hotkeys(cfg.Hotkeys, nil),
		Warnings:       nonNil(warnings),
		ConfigChecksum: sum,
	}, nil
}

// record stores the creation in history and returns its id. Failures are
// logged only.
func (s *Service) record(ctx context.Context, c *Created, mode, source string) string {
	ids := make([]string, len(c.Plugins))
	for i, p := range c.Plugins {
		ids[i] = p.ID
	}
	r := models.VaultRecord{
		Name:           c.Name,
		Path:           c.Path,
		Template:       c.Template.Key,
		Mode:           mode,
		Source:         source,
		Plugins:        ids,
		ConfigChecksum: c.ConfigChecksum,
		CreatedAt:      s.now().UTC(),
	}
	if s.recorder != nil {
		stored, err := s.recorder.Record(ctx, r)
		if err != nil {
			s.logger.Warn("vault: record history failed", slog.String("path", c.Path), slog.String("error", err.Error()))
		} else {
			r = stored
		}
	}
	if s.notifier != nil {
		s.notifier.VaultWritten(r)
	}
	return r.ID
}

func inspect(source string, ext models.RawExternalConfig) Inspection {
	return Inspection{
		Source: source,
		Inventory: Inventory{
			Plugins:  nonNil(ext.Plugins),
			Themes:   nonNil(ext.Themes),
			Snippets: nonNil(ext.Snippets),
		},
		Analysis: analyzer.Analyze(ext),
	}
}

func describeNotes(notes map[string]string) []Note {
	out := make([]Note, 0, len(notes))
	for p, body := range notes {
		res := parser.Parse([]byte(body))
		out = append(out, Note{Path: p, Title: res.Title, Placeholders: res.Placeholders})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// DefaultParent is the configured parent directory used when a request
// names no path.
func (s *Service) DefaultParent() string {
	return s.defaultParent
}
