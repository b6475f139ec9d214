// Package pathresolve maps a logical category path to a real on-disk path,
// tolerating Unicode normalization drift between the catalog store and the
// filesystem.
package pathresolve

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrNotFound is returned when none of the resolution strategies locate the
// logical path on disk.
var ErrNotFound = errors.New("pathresolve: not found")

// excludedNames are never traversed. Names are matched exactly
// (case-sensitively).
var excludedNames = map[string]bool{
	"성인":             true,
	"19금":            true,
	"Adult":          true,
	"@eaDir":         true,
	"#recycle":       true,
	".streamBaseMD5": true,
}

// IsExcluded reports whether a single path component should be pruned from
// any traversal: the fixed excluded set, or any dot-prefixed name.
func IsExcluded(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	return excludedNames[name]
}

// Resolver resolves logical category+relative paths against a set of
// category roots.
type Resolver struct {
	roots map[string]string
}

// New builds a Resolver from a category-label -> root-directory mapping.
func New(roots map[string]string) *Resolver {
	cp := make(map[string]string, len(roots))
	for k, v := range roots {
		cp[k] = v
	}
	return &Resolver{roots: cp}
}

// Resolve maps "<category>/<relative>" to an existing absolute path.
func (r *Resolver) Resolve(logical string) (string, error) {
	category, relative, ok := splitLogical(logical)
	if !ok {
		return "", ErrNotFound
	}
	root, ok := r.roots[category]
	if !ok {
		return "", ErrNotFound
	}
	return ResolveUnder(root, relative)
}

func splitLogical(logical string) (category, relative string, ok bool) {
	logical = strings.TrimPrefix(logical, "/")
	parts := strings.SplitN(logical, "/", 2)
	if len(parts) == 0 || parts[0] == "" {
		return "", "", false
	}
	if len(parts) == 1 {
		return parts[0], "", true
	}
	return parts[0], parts[1], true
}

// ResolveUnder resolves a relative path against a single root directory
// using the exact -> NFC -> NFD -> directory-scan cascade.
func ResolveUnder(root, relative string) (string, error) {
	for _, comp := range strings.Split(relative, string(filepath.Separator)) {
		if IsExcluded(comp) {
			return "", ErrNotFound
		}
	}

	candidate := filepath.Join(root, relative)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	nfc := filepath.Join(root, norm.NFC.String(relative))
	if nfc != candidate {
		if _, err := os.Stat(nfc); err == nil {
			return nfc, nil
		}
	}

	nfd := filepath.Join(root, norm.NFD.String(relative))
	if nfd != candidate && nfd != nfc {
		if _, err := os.Stat(nfd); err == nil {
			return nfd, nil
		}
	}

	return scanForMatch(root, relative)
}

// scanForMatch walks the directory tree component by component, comparing
// the NFC form of each directory entry against the NFC form of the wanted
// component. This is the fallback when neither the stored form nor its NFC/
// NFD counterparts exist verbatim (e.g. a filesystem that normalizes names
// on write).
func scanForMatch(root, relative string) (string, error) {
	wantComponents := strings.Split(relative, string(filepath.Separator))
	current := root

	for _, want := range wantComponents {
		wantNFC := norm.NFC.String(want)
		entries, err := os.ReadDir(current)
		if err != nil {
			return "", ErrNotFound
		}

		found := ""
		for _, e := range entries {
			if norm.NFC.String(e.Name()) == wantNFC {
				found = e.Name()
				break
			}
		}
		if found == "" {
			return "", ErrNotFound
		}
		current = filepath.Join(current, found)
	}

	if _, err := os.Stat(current); err != nil {
		return "", ErrNotFound
	}
	return current, nil
}
