package gitfetch

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func gitIn(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{
		"-c", "user.name=test", "-c", "user.email=test@example.com", "-c", "commit.gpgsign=false",
	}, args...)...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

// sourceRepo creates a local repository holding a minimal vault config.
func sourceRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".obsidian"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".obsidian", "app.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	gitIn(t, dir, "init", "--quiet")
	gitIn(t, dir, "add", ".")
	gitIn(t, dir, "commit", "--quiet", "-m", "init")
	return dir
}

func countEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	return len(entries)
}

func TestFetchAndRelease(t *testing.T) {
	requireGit(t)
	src := sourceRepo(t)
	tmp := t.TempDir()
	f := New(Options{TempDir: tmp, Timeout: time.Minute}, nil)

	dir, err := f.Fetch(context.Background(), "file://"+src)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".obsidian", "app.json")); err != nil {
		t.Fatalf("cloned config missing: %v", err)
	}

	if err := f.Release(dir); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("clone dir still present after release")
	}
}

func TestFetchFailureCleansUp(t *testing.T) {
	requireGit(t)
	tmp := t.TempDir()
	f := New(Options{TempDir: tmp}, nil)

	_, err := f.Fetch(context.Background(), "file://"+filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing repository")
	}
	if n := countEntries(t, tmp); n != 0 {
		t.Errorf("temp entries after failed fetch = %d, want 0", n)
	}
}

func TestFetchCancelled(t *testing.T) {
	requireGit(t)
	src := sourceRepo(t)
	tmp := t.TempDir()
	f := New(Options{TempDir: tmp}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Fetch(ctx, "file://"+src); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if n := countEntries(t, tmp); n != 0 {
		t.Errorf("temp entries after cancelled fetch = %d, want 0", n)
	}
}

func TestValidateURL(t *testing.T) {
	for _, url := range []string{"", "   ", "-uhack", "--upload-pack=x"} {
		if err := ValidateURL(url); err == nil {
			t.Errorf("ValidateURL(%q) expected error", url)
		}
	}
	if err := ValidateURL("https://github.com/user/vault.git"); err != nil {
		t.Errorf("ValidateURL: %v", err)
	}
}

func TestReleaseRejectsForeignDir(t *testing.T) {
	f := New(Options{}, nil)
	dir := t.TempDir()
	if err := f.Release(dir); err == nil {
		t.Error("expected error releasing a directory not created by Fetch")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("foreign dir removed: %v", err)
	}
}
