// Package pathutil holds the '/'-delimited path helpers shared by the tree
// operations. Paths are always treated as absolute.
package pathutil

import (
	"path"
	"strings"
)

const Root = "/"

// Clean returns the absolute, normalized form of p.
// An empty path is the root.
func Clean(p string) string {
	if p == "" {
		return Root
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Dirname returns the parent directory of p. Trailing slashes are ignored and
// the parent of the root is the root itself.
func Dirname(p string) string {
	d := path.Dir(path.Clean(p))
	if d == "." || d == "" {
		return Root
	}
	return d
}

// Join concatenates the segments with '/' and normalizes duplicate
// separators as well as "." and ".." components.
func Join(elem ...string) string {
	return path.Join(elem...)
}

// Extname returns the lowercase extension of name including the leading dot,
// or "" if there is none. Leading dots belong to the name, so ".bashrc" has no
// extension.
func Extname(name string) string {
	base := path.Base(name)
	lead := len(base) - len(strings.TrimLeft(base, "."))
	i := strings.LastIndexByte(base, '.')
	if i < lead {
		return ""
	}
	return strings.ToLower(base[i:])
}

// IsDescendant reports whether p lies strictly below ancestor
func IsDescendant(p, ancestor string) bool {
	if ancestor == Root {
		return p != Root && strings.HasPrefix(p, Root)
	}
	return strings.HasPrefix(p, ancestor+"/")
}

// Rebase replaces the oldPrefix of p with newPrefix, keeping the suffix.
// p must be oldPrefix itself or one of its descendants.
func Rebase(p, oldPrefix, newPrefix string) string {
	if p == oldPrefix {
		return newPrefix
	}
	return Join(newPrefix, strings.TrimPrefix(p, oldPrefix))
}

// Base returns the last element of p; the root's base is "/"
func Base(p string) string {
	return path.Base(Clean(p))
}
