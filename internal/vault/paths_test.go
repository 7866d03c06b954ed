package vault

import (
	"path/filepath"
	"testing"
)

func TestResolveParent(t *testing.T) {
	home := "/home/ada"
	def := "~/Documents/Obsidian"
	want := filepath.Join(home, "Documents", "Obsidian")

	cases := []struct {
		in   string
		want string
	}{
		{"", want},
		{"   ", want},
		{"/", want},
		{"/Users", want},
		{`C:\`, want},
		{"~", home},
		{"~/vaults", filepath.Join(home, "vaults")},
		{"Documents", filepath.Join(home, "Documents")},
		{"Desktop/notes", filepath.Join(home, "Desktop", "notes")},
		{"/Users/Documents", filepath.Join(home, "Documents")},
		{"/Users/Documents/Work", filepath.Join(home, "Documents", "Work")},
		{"/srv/vaults/", "/srv/vaults"},
	}
	for _, tc := range cases {
		if got := ResolveParent(tc.in, home, def); got != tc.want {
			t.Errorf("ResolveParent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveParent_FallbackRootLike(t *testing.T) {
	got := ResolveParent("", "/home/ada", "/")
	if want := filepath.Join("/home/ada", "Documents", "Obsidian"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
