package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/live-labs/shed/internal/crypto"
)

const (
	EncSuffix = ".enc" // appended to encrypted output names
	DecSuffix = ".dec" // fallback when a decrypt input has no .enc suffix

	DirPermSecure  = 0700
	FilePermSecure = 0600
)

var (
	ErrPathNotFound = errors.New("path does not exist")
	ErrNoTargets    = errors.New("no files matched the given paths")
)

// Mode selects the transform a Processor applies.
type Mode int

const (
	ModeEncrypt Mode = iota
	ModeDecrypt
)

// Options configures one batch run.
type Options struct {
	Output       string // explicit output file or directory; empty means sibling of input
	Recurse      bool
	Force        bool // overwrite existing outputs instead of skipping
	RemoveSource bool // delete the input after a successful transform
	DryRun       bool
	Include      []string // name globs, empty admits everything
	Exclude      []string
}

// Processor walks input paths and encrypts or decrypts each file,
// one at a time. Per-file failures become Result records; only
// invalid arguments or cancellation abort a run.
type Processor struct {
	mode    Mode
	opts    Options
	include []glob.Glob
	exclude []glob.Glob
}

// NewProcessor creates a processor, compiling the include/exclude
// patterns. A bad pattern is an argument error, not a per-file one.
func NewProcessor(mode Mode, opts Options) (*Processor, error) {
	include, err := compileGlobs(opts.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.Exclude)
	if err != nil {
		return nil, err
	}

	return &Processor{
		mode:    mode,
		opts:    opts,
		include: include,
		exclude: exclude,
	}, nil
}

// Run processes every file reachable from paths and returns one Result
// per file. The returned error is non-nil only for cancellation; all
// per-file errors are carried inside the results.
func (p *Processor) Run(ctx context.Context, paths []string, password []byte) ([]Result, error) {
	var results []Result
	var all []target

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		targets, err := collectTargets(path, p.opts.Recurse, p.include, p.exclude)
		if err != nil {
			results = append(results, Result{Input: path, Status: StatusFailed, Err: err})
			continue
		}
		all = append(all, targets...)
	}

	if len(all) == 0 && len(results) == 0 {
		return nil, ErrNoTargets
	}

	outIsDir := false
	if p.opts.Output != "" {
		if info, err := os.Stat(p.opts.Output); err == nil && info.IsDir() {
			outIsDir = true
		}
	}

	multi := len(all) > 1
	for _, t := range all {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		out := p.outputPath(t, multi, outIsDir)
		results = append(results, p.processFile(ctx, t.path, out, password))
	}

	return results, nil
}

// outputPath computes where a target's transformed bytes go. An
// explicit output directory mirrors the input's relative structure;
// an explicit output file is honored only for a single input.
func (p *Processor) outputPath(t target, multi, outIsDir bool) string {
	switch {
	case p.opts.Output == "":
		return transformName(t.path, p.mode)
	case outIsDir || multi:
		return filepath.Join(p.opts.Output, transformName(filepath.FromSlash(t.rel), p.mode))
	default:
		return p.opts.Output
	}
}

// transformName applies the naming rule: encrypt appends .enc, decrypt
// strips a trailing .enc or, failing that, appends .dec.
func transformName(path string, mode Mode) string {
	if mode == ModeEncrypt {
		return path + EncSuffix
	}
	if strings.HasSuffix(path, EncSuffix) {
		return strings.TrimSuffix(path, EncSuffix)
	}
	return path + DecSuffix
}

// processFile runs the per-file state machine:
// Pending -> SkippedExists | Planned | Success | Failed.
func (p *Processor) processFile(ctx context.Context, in, out string, password []byte) Result {
	r := Result{Input: in, Output: out, Status: StatusPending}

	// Overwrite policy: existence check immediately before any work
	if _, err := os.Stat(out); err == nil && !p.opts.Force {
		r.Status = StatusSkippedExists
		return r
	}

	if p.opts.DryRun {
		r.Status = StatusPlanned
		return r
	}

	data, err := os.ReadFile(in)
	if err != nil {
		r.Status = StatusFailed
		r.Err = fmt.Errorf("cannot read %s: %w", in, err)
		return r
	}

	var output []byte
	if p.mode == ModeEncrypt {
		output, err = crypto.Seal(password, data)
		crypto.ClearBytes(data)
	} else {
		output, err = crypto.Open(password, data)
	}
	if err != nil {
		r.Status = StatusFailed
		r.Err = err
		return r
	}

	err = writeAtomic(ctx, out, output)
	if p.mode == ModeDecrypt {
		crypto.ClearBytes(output)
	}
	if err != nil {
		r.Status = StatusFailed
		r.Err = err
		return r
	}

	// Deletion is gated on success only
	if p.opts.RemoveSource {
		if err := os.Remove(in); err != nil {
			fmt.Printf("warning: cannot remove %s: %v\n", in, err)
		}
	}

	r.Status = StatusSuccess
	return r
}

// writeAtomic writes data to a temporary file next to the destination
// and renames it into place, so an interrupted run never leaves a
// partial file that could pass for a complete envelope.
func writeAtomic(ctx context.Context, out string, data []byte) error {
	dir := filepath.Dir(out)
	if err := os.MkdirAll(dir, DirPermSecure); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".shed-*")
	if err != nil {
		return fmt.Errorf("cannot create temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cannot write %s: %w", out, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cannot write %s: %w", out, err)
	}

	if err := ctx.Err(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, out); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cannot move output into place: %w", err)
	}
	return nil
}
