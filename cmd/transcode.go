package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/live-labs/shed/internal/transcode"
)

// Transcode runs the external encoder for each input file. One file's
// failure does not stop the rest of the batch.
func Transcode(ctx context.Context, opts transcode.Options, paths []string) {
	failed := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(os.Stderr, "interrupted")
			os.Exit(1)
		}

		if err := transcode.Run(ctx, path, opts); err != nil {
			if errors.Is(err, transcode.ErrUnknownPreset) {
				// Bad preset fails every file identically; stop early
				HandleError(err)
			}
			fmt.Printf("error: %s: %v\n", path, err)
			failed++
			continue
		}

		if !opts.DryRun {
			out, _ := transcode.OutputPath(path, opts)
			fmt.Printf("transcoded: %s -> %s\n", path, out)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
