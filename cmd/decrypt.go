package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/live-labs/shed/internal/core"
	"github.com/live-labs/shed/internal/crypto"
)

// Decrypt runs the decrypt batch over the given paths
func Decrypt(ctx context.Context, opts core.Options, paths []string, keyringProfile string, noJournal bool) {
	proc, err := core.NewProcessor(core.ModeDecrypt, opts)
	if err != nil {
		HandleError(err)
	}

	password, err := GetPassword("Enter password: ", keyringProfile)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	results, runErr := proc.Run(ctx, paths, password)
	summary := reportResults("decrypted", results)
	writeJournal("decrypt", results, noJournal)

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
