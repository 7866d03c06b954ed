package checksum

import (
	"errors"
	"testing"
)

type mapReader map[string]string

func (m mapReader) Read(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(s), nil
}

func TestSum(t *testing.T) {
	const want = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(nil); got != want {
		t.Errorf("Sum(nil) = %q, want %q", got, want)
	}
}

func TestFile(t *testing.T) {
	r := mapReader{".obsidian/app.json": "{}"}
	got, err := File(r, ".obsidian/app.json")
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if got != Sum([]byte("{}")) {
		t.Errorf("File = %q", got)
	}
	if _, err := File(r, "missing"); err == nil {
		t.Error("expected error for missing file")
	}
}
