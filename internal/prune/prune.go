// Package prune removes outdated versions from a directory laid out
// as <root>/<name>/<version>/, keeping the highest version of each
// name. Version directories are dotted-numeric (1.2.3); anything else
// is left untouched.
package prune

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrNotDirectory = errors.New("not a directory")

// Removal identifies one version directory selected for deletion.
type Removal struct {
	Name    string
	Version string
	Path    string
}

// Scan finds every outdated version directory under root without
// touching anything.
func Scan(root string) ([]Removal, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	names, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", root, err)
	}

	var removals []Removal
	for _, name := range names {
		if !name.IsDir() {
			continue
		}

		nameDir := filepath.Join(root, name.Name())
		entries, err := os.ReadDir(nameDir)
		if err != nil {
			fmt.Printf("warning: cannot read %s: %v\n", nameDir, err)
			continue
		}

		var versions []string
		for _, e := range entries {
			if e.IsDir() && isVersion(e.Name()) {
				versions = append(versions, e.Name())
			}
		}
		if len(versions) < 2 {
			continue
		}

		latest := versions[0]
		for _, v := range versions[1:] {
			if compareVersions(v, latest) > 0 {
				latest = v
			}
		}

		for _, v := range versions {
			if v == latest {
				continue
			}
			removals = append(removals, Removal{
				Name:    name.Name(),
				Version: v,
				Path:    filepath.Join(nameDir, v),
			})
		}
	}

	return removals, nil
}

// Run scans root and, unless dryRun is set, deletes every outdated
// version directory. Deletion failures are warnings; the returned
// list is what was selected (and, without dryRun, attempted).
func Run(root string, dryRun bool) ([]Removal, error) {
	removals, err := Scan(root)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return removals, nil
	}

	rootReal, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %s: %w", root, err)
	}

	for _, r := range removals {
		if err := confineToRoot(rootReal, r.Path); err != nil {
			fmt.Printf("warning: refusing to remove %s: %v\n", r.Path, err)
			continue
		}
		if err := os.RemoveAll(r.Path); err != nil {
			fmt.Printf("warning: cannot remove %s: %v\n", r.Path, err)
		}
	}

	return removals, nil
}

// confineToRoot verifies a deletion target resolves inside the pruned
// root, so a symlinked version directory cannot redirect the removal
// elsewhere.
func confineToRoot(rootReal, path string) error {
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fmt.Errorf("cannot resolve: %w", err)
	}
	rel, err := filepath.Rel(rootReal, real)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || !filepath.IsLocal(rel) {
		return fmt.Errorf("path escapes %s", rootReal)
	}
	return nil
}

// isVersion reports whether s is a dotted-numeric version like 1.2.3.
func isVersion(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		if _, err := strconv.Atoi(part); err != nil {
			return false
		}
	}
	return true
}

// compareVersions orders dotted-numeric versions. Missing segments
// count as zero, so 1.2 < 1.2.1.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}
