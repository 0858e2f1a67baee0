// pattern: Functional Core

package discovery

import (
	"fmt"
	"path/filepath"
	"strings"
)

// TransformName returns the final path component of path with the first
// occurrence of token removed, wherever it appears. The token is matched
// case-insensitively, like the match token. Names without the token are
// returned unchanged. If the result would not be a usable directory name
// (empty, "." or "..", or containing a separator) the original is kept.
func TransformName(path, token string) string {
	base := filepath.Base(path)
	i := indexFold(base, token)
	if token == "" || i < 0 {
		return base
	}
	name := base[:i] + base[i+len(token):]
	if !ValidName(name) {
		return base
	}
	return name
}

// ValidName reports whether name can be joined to a root and stay a direct
// child of it.
func ValidName(name string) bool {
	switch name {
	case "", ".", "..":
		return false
	}
	return !strings.ContainsRune(name, '/') && !strings.ContainsRune(name, filepath.Separator)
}

// indexFold is strings.Index under Unicode case folding, for tokens whose
// folded forms have the same byte length.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

// TransformNames maps TransformName over paths, preserving length and order.
func TransformNames(paths []string, token string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = TransformName(p, token)
	}
	return names
}

// Names returns the output names of dirs in order.
func Names(dirs []GameDir) []string {
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.Name
	}
	return names
}

// ResolveCollisions checks that every output name is unique and does not
// use one of the reserved names.
//
// Under CollisionFail the first duplicate returns ErrNameCollision naming both
// sources. Under CollisionSuffix later duplicates get "-2", "-3", ... appended,
// skipping any candidate that is already in use. A reserved name counts as
// taken before any directory claims it. The input is not modified.
func ResolveCollisions(dirs []GameDir, policy CollisionPolicy, reserved ...string) ([]GameDir, error) {
	taken := make(map[string]string, len(dirs)+len(reserved))
	seen := make(map[string]string, len(dirs)+len(reserved))
	for _, r := range reserved {
		taken[r] = ""
		seen[r] = ""
	}
	for _, d := range dirs {
		if _, ok := taken[d.Name]; !ok {
			taken[d.Name] = d.Path
		}
	}

	out := make([]GameDir, 0, len(dirs))

	for _, d := range dirs {
		first, dup := seen[d.Name]
		if !dup {
			seen[d.Name] = d.Path
			out = append(out, d)
			continue
		}

		switch policy {
		case CollisionSuffix:
			name := nextFreeName(d.Name, taken)
			taken[name] = d.Path
			seen[name] = d.Path
			out = append(out, GameDir{Path: d.Path, Name: name})
		default:
			if first == "" {
				return nil, fmt.Errorf("%w: %s maps to reserved name %q", ErrNameCollision, d.Path, d.Name)
			}
			return nil, fmt.Errorf("%w: %s and %s both map to %q", ErrNameCollision, first, d.Path, d.Name)
		}
	}

	return out, nil
}

func nextFreeName(name string, taken map[string]string) string {
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", name, i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
