package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// CollectFiles expands a path argument into the files beneath it,
// applying the same recursion and name-filter rules the encrypt and
// decrypt batches use. Other commands (eol, for one) share the walk
// through this.
func CollectFiles(path string, recurse bool, include, exclude []string) ([]string, error) {
	inc, err := compileGlobs(include)
	if err != nil {
		return nil, err
	}
	exc, err := compileGlobs(exclude)
	if err != nil {
		return nil, err
	}
	targets, err := collectTargets(path, recurse, inc, exc)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(targets))
	for _, t := range targets {
		paths = append(paths, t.path)
	}
	return paths, nil
}

// target is one file selected for processing. rel is the path relative
// to the argument that produced it, used to mirror directory structure
// under an explicit output directory.
type target struct {
	path string
	rel  string
}

// compileGlobs compiles name-matching patterns up front so a bad
// pattern fails the whole invocation instead of one file at a time.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// matchName applies include/exclude filters to a file's base name.
// An empty include list admits everything.
func matchName(name string, include, exclude []glob.Glob) bool {
	for _, g := range exclude {
		if g.Match(name) {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, g := range include {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// collectTargets expands one path argument into the files to process.
// A plain file yields itself. A directory yields its files, optionally
// recursively, filtered by the include/exclude globs.
func collectTargets(path string, recurse bool, include, exclude []glob.Glob) ([]target, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}

	if !info.IsDir() {
		return []target{{path: path, rel: filepath.Base(path)}}, nil
	}

	var targets []target
	if !recurse {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read directory %s: %w", path, err)
		}
		for _, e := range entries {
			if e.IsDir() || !e.Type().IsRegular() {
				continue
			}
			if !matchName(e.Name(), include, exclude) {
				continue
			}
			targets = append(targets, target{
				path: filepath.Join(path, e.Name()),
				rel:  e.Name(),
			})
		}
		return targets, nil
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !matchName(d.Name(), include, exclude) {
			return nil
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		targets = append(targets, target{path: p, rel: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot walk directory %s: %w", path, err)
	}

	return targets, nil
}
