package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/live-labs/shed/internal/core"
	"github.com/live-labs/shed/internal/crypto"
	"github.com/live-labs/shed/internal/git"
)

// Encrypt runs the encrypt batch over the given paths
func Encrypt(ctx context.Context, opts core.Options, paths []string, keyringProfile string, noJournal bool) {
	proc, err := core.NewProcessor(core.ModeEncrypt, opts)
	if err != nil {
		HandleError(err)
	}

	password, err := GetPasswordConfirm(keyringProfile)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	warnGitTracked(paths)

	results, runErr := proc.Run(ctx, paths, password)
	summary := reportResults("encrypted", results)
	writeJournal("encrypt", results, noJournal)

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			fmt.Fprintln(os.Stderr, "interrupted")
			os.Exit(1)
		}
		HandleError(runErr)
	}
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

// warnGitTracked flags plaintext inputs that are committed to git; the
// secret is likely already in history.
func warnGitTracked(paths []string) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		dir := filepath.Dir(path)
		if git.IsRepo(dir) && git.IsTracked(dir, filepath.Base(path)) {
			fmt.Fprintf(os.Stderr, "warning: %s is tracked by git; its plaintext may already be in history\n", path)
		}
	}
}
