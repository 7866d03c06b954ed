package vault

import (
	"log/slog"
	"time"

	"github.com/starford/vaultboot/internal/manifest"
)

// Option is a functional option for configuring the Service.
type Option func(*Service)

// WithResolver overrides the manifest resolver chain.
func WithResolver(r manifest.Resolver) Option {
	return func(s *Service) { s.resolver = r }
}

// WithIngester sets the external configuration reader used by adopt and analyze.
func WithIngester(i Ingester) Option {
	return func(s *Service) { s.ingester = i }
}

// WithRecorder enables vault history.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithNotifier publishes every written vault.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithHome sets the home directory used for path normalisation.
func WithHome(home string) Option {
	return func(s *Service) { s.home = home }
}

// WithDefaultParent sets the parent directory used when a request has none.
func WithDefaultParent(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.defaultParent = dir
		}
	}
}

// WithClock overrides the clock used for note dates and history timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}
