package launch

import (
	"net/url"
	"path/filepath"
	"strings"
)

// FileURI converts a filesystem path to a file:// URI. Arguments that
// already carry a scheme pass through untouched so callers can hand the
// tool a URI directly. Relative paths are resolved against the working
// directory, matching what the remote service will be able to reach.
func FileURI(path string) (string, error) {
	if hasScheme(path) {
		return path, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	u := url.URL{Scheme: "file", Path: abs}
	return u.String(), nil
}

// hasScheme reports whether s starts with something like "scheme://".
// The scheme must be at least two characters so a stray Windows-style
// drive letter is never mistaken for one.
func hasScheme(s string) bool {
	head, _, ok := strings.Cut(s, "://")
	if !ok || len(head) < 2 {
		return false
	}
	for _, r := range head {
		valid := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.'
		if !valid {
			return false
		}
	}
	return true
}
