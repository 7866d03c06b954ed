package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func tempRoot(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempRoot(t)
	content := []byte(`{"a": 1}`)
	if err := s.Write(".obsidian/app.json", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read(".obsidian/app.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteOverwrites(t *testing.T) {
	s := tempRoot(t)
	_ = s.Write("note.md", []byte("old"))
	if err := s.Write("note.md", []byte("new")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("note.md")
	if string(got) != "new" {
		t.Errorf("content = %q, want new", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, ".vaultboot-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestMkdirAllIdempotent(t *testing.T) {
	s := tempRoot(t)
	for i := 0; i < 2; i++ {
		if err := s.MkdirAll("Readwise/Books"); err != nil {
			t.Fatalf("MkdirAll #%d: %v", i, err)
		}
	}
	info, err := os.Stat(filepath.Join(s.Root(), "Readwise", "Books"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory, err = %v", err)
	}
}

func TestExists(t *testing.T) {
	s := tempRoot(t)
	if s.Exists("missing") {
		t.Error("missing path reported as existing")
	}
	_ = s.Write("present.md", []byte("x"))
	if !s.Exists("present.md") {
		t.Error("present path reported as missing")
	}
	if s.Exists("../outside") {
		t.Error("traversal path reported as existing")
	}
}

func TestReadDirSorted(t *testing.T) {
	s := tempRoot(t)
	_ = s.MkdirAll("plugins/b")
	_ = s.MkdirAll("plugins/a")
	entries, err := s.ReadDir("plugins")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 || entries[0].Name() != "a" || entries[1].Name() != "b" {
		t.Errorf("entries = %v", entries)
	}
}

func TestGlob(t *testing.T) {
	s := tempRoot(t)
	_ = s.Write("themes/Minimal.css", []byte("x"))
	_ = s.Write("themes/readme.txt", []byte("x"))
	_ = s.Write("themes/nested/Deep.css", []byte("x"))

	matches, err := s.Glob("themes/*.css")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) != 1 || matches[0] != "themes/Minimal.css" {
		t.Errorf("matches = %v", matches)
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempRoot(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.md",
		"/etc/shadow",
		"a/../../b",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
		if err := s.MkdirAll(p); err == nil {
			t.Errorf("expected error for mkdir %q", p)
		}
	}
}

func TestCleanRel(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "notes", want: "notes"},
		{in: "Readwise/Books/", want: filepath.Join("Readwise", "Books")},
		{in: "a/./b", want: filepath.Join("a", "b")},
		{in: "", wantErr: true},
		{in: "../x", wantErr: true},
		{in: "a/../b", wantErr: true},
		{in: "/abs", wantErr: true},
	}
	for _, tc := range cases {
		got, err := CleanRel(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("CleanRel(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("CleanRel(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/vaultboot-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "vaultboot-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
