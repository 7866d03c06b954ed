// Package gitfetch clones source repositories into temporary directories
// with the git command-line client.
package gitfetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const tempPattern = "vaultboot-clone-*"

// Defaults applied by New to zero options.
const (
	DefaultBinary = "git"
	DefaultDepth  = 1
)

var (
	errEmptyURL   = errors.New("repository url is empty")
	errOptionURL  = errors.New("repository url must not start with '-'")
	errNotFetched = errors.New("directory was not created by this fetcher")
)

// Options configures a Fetcher.
type Options struct {
	Binary  string
	Depth   int
	Timeout time.Duration
	// TempDir is the parent of clone directories; empty uses os.TempDir.
	TempDir string
}

// Fetcher shallow-clones repositories with git.
type Fetcher struct {
	opts   Options
	logger *slog.Logger
}

// New returns a Fetcher. Zero options fall back to "git", depth 1 and no
// timeout beyond the caller's context.
func New(opts Options, logger *slog.Logger) *Fetcher {
	if opts.Binary == "" {
		opts.Binary = DefaultBinary
	}
	if opts.Depth <= 0 {
		opts.Depth = DefaultDepth
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{opts: opts, logger: logger}
}

// ValidateURL rejects locators git could misread as options.
func ValidateURL(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errEmptyURL
	}
	if strings.HasPrefix(url, "-") {
		return errOptionURL
	}
	return nil
}

// Fetch clones url into a fresh temporary directory and returns its path.
// On failure the directory is removed before returning.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ValidateURL(url); err != nil {
		return "", err
	}
	dir, err := os.MkdirTemp(f.opts.TempDir, tempPattern)
	if err != nil {
		return "", fmt.Errorf("gitfetch: create temp dir: %w", err)
	}

	if f.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	if _, err := f.run(ctx, "clone", "--quiet", "--depth", strconv.Itoa(f.opts.Depth), "--", strings.TrimSpace(url), dir); err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			f.logger.Warn("gitfetch: cleanup failed", slog.String("path", dir), slog.String("error", rmErr.Error()))
		}
		return "", err
	}
	f.logger.Debug("gitfetch: cloned",
		slog.String("url", url),
		slog.String("path", dir),
		slog.Duration("took", time.Since(start)))
	return dir, nil
}

// Release removes a directory returned by Fetch.
func (f *Fetcher) Release(dir string) error {
	if !strings.HasPrefix(filepath.Base(dir), strings.TrimSuffix(tempPattern, "*")) {
		return fmt.Errorf("gitfetch: release %s: %w", dir, errNotFetched)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("gitfetch: release %s: %w", dir, err)
	}
	return nil
}

// run executes git and returns its trimmed combined output.
func (f *Fetcher) run(ctx context.Context, args ...string) (string, error) {
	f.logger.Debug("executing git", "args", args)

	cmd := exec.CommandContext(ctx, f.opts.Binary, args...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return output, fmt.Errorf("git %s: %w", args[0], ctxErr)
		}
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}
	return output, nil
}
