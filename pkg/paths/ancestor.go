package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Root is the filesystem root every absolute path shares
const Root = string(filepath.Separator)

// Components splits an absolute path into its non-root components.
// The root itself has no components.
func Components(path string) []string {
	trimmed := strings.TrimPrefix(filepath.Clean(path), Root)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, Root)
}

// CommonAncestor returns the longest component-wise prefix shared by a and
// b. It is the root when the paths share nothing below it.
//
// Both paths must be absolute; callers resolve them first, so a relative
// path here is a bug and panics.
func CommonAncestor(a, b string) string {
	if !filepath.IsAbs(a) {
		panic(fmt.Sprintf("paths: CommonAncestor called with relative path %q", a))
	}
	if !filepath.IsAbs(b) {
		panic(fmt.Sprintf("paths: CommonAncestor called with relative path %q", b))
	}

	ac, bc := Components(a), Components(b)
	ancestor := Root
	for i := 0; i < len(ac) && i < len(bc); i++ {
		if ac[i] != bc[i] {
			break
		}
		ancestor = filepath.Join(ancestor, ac[i])
	}
	return ancestor
}

// IsAncestor reports whether ancestor is a component-wise prefix of path.
// A path is its own ancestor.
func IsAncestor(ancestor, path string) bool {
	ac, pc := Components(ancestor), Components(path)
	if len(ac) > len(pc) {
		return false
	}
	for i := range ac {
		if ac[i] != pc[i] {
			return false
		}
	}
	return true
}

// StripAncestor returns path relative to ancestor, or "" when they are the
// same path.
func StripAncestor(ancestor, path string) (string, error) {
	if !IsAncestor(ancestor, path) {
		return "", fmt.Errorf("'%s' is not inside '%s'", path, ancestor)
	}
	rest := Components(path)[len(Components(ancestor)):]
	return filepath.Join(rest...), nil
}

// DepthBelow returns how many components path has beyond ancestor.
func DepthBelow(ancestor, path string) (int, error) {
	if !IsAncestor(ancestor, path) {
		return 0, fmt.Errorf("'%s' is not inside '%s'", path, ancestor)
	}
	return len(Components(path)) - len(Components(ancestor)), nil
}
