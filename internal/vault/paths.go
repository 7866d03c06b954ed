package vault

import (
	"path/filepath"
	"strings"
)

// DefaultParent is the parent directory used when none is configured.
const DefaultParent = "~/Documents/Obsidian"

// ResolveParent normalises a user-supplied parent directory. Empty input and
// filesystem roots resolve to fallback; "~" expands to home; bare relative
// names such as "Documents" are placed under home; "/Users/Documents" without
// a user name is mapped into home.
func ResolveParent(input, home, fallback string) string {
	p := strings.TrimSpace(input)
	if isRootLike(p) {
		p = strings.TrimSpace(fallback)
		if isRootLike(p) {
			p = DefaultParent
		}
	}

	p = expandHome(p, home)
	if p == "/Users/Documents" || strings.HasPrefix(p, "/Users/Documents/") {
		p = filepath.Join(home, "Documents", strings.TrimPrefix(p, "/Users/Documents"))
	}
	if !filepath.IsAbs(p) && !strings.Contains(p, ":") {
		p = filepath.Join(home, p)
	}
	return filepath.Clean(p)
}

func isRootLike(p string) bool {
	switch p {
	case "", "/", "/Users", `C:\`, "C:", "C:/":
		return true
	}
	return false
}

func expandHome(p, home string) string {
	switch {
	case p == "~":
		return home
	case strings.HasPrefix(p, "~/"), strings.HasPrefix(p, `~\`):
		return filepath.Join(home, p[2:])
	}
	return p
}
