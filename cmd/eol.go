package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/live-labs/shed/internal/core"
	"github.com/live-labs/shed/internal/eol"
	"github.com/live-labs/shed/internal/journal"
)

// EolOptions configures the line-ending conversion batch.
type EolOptions struct {
	To        string
	Recurse   bool
	DryRun    bool
	ShowDiff  bool
	Include   []string
	Exclude   []string
	NoJournal bool
}

// Eol converts line endings for every text file under the given paths
func Eol(ctx context.Context, opts EolOptions, paths []string) {
	style, err := eol.ParseStyle(opts.To)
	if err != nil {
		HandleError(err)
	}

	run := journal.NewRun("eol")
	converted, skipped, failed := 0, 0, 0

	record := func(input, status, errMsg string) {
		run.Entries = append(run.Entries, journal.Entry{
			Input:  input,
			Output: input,
			Status: status,
			Error:  errMsg,
		})
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(os.Stderr, "interrupted")
			os.Exit(1)
		}

		files, err := core.CollectFiles(path, opts.Recurse, opts.Include, opts.Exclude)
		if err != nil {
			fmt.Printf("error: %s: %v\n", path, err)
			record(path, "failed", err.Error())
			failed++
			continue
		}

		for _, file := range files {
			if err := ctx.Err(); err != nil {
				fmt.Fprintln(os.Stderr, "interrupted")
				os.Exit(1)
			}

			data, err := os.ReadFile(file)
			if err != nil {
				fmt.Printf("error: cannot read %s: %v\n", file, err)
				record(file, "failed", err.Error())
				failed++
				continue
			}

			out, err := eol.Convert(data, style)
			if errors.Is(err, eol.ErrBinaryFile) {
				fmt.Printf("skipped: %s (binary)\n", file)
				record(file, "skipped (binary)", "")
				skipped++
				continue
			}
			if err != nil {
				fmt.Printf("error: %s: %v\n", file, err)
				record(file, "failed", err.Error())
				failed++
				continue
			}

			if string(out) == string(data) {
				skipped++
				continue
			}

			if opts.ShowDiff {
				fmt.Print(eol.UnifiedDiff(file, data, out))
			}

			if opts.DryRun {
				fmt.Printf("would convert: %s -> %s\n", file, style)
				record(file, "planned", "")
				converted++
				continue
			}

			info, err := os.Stat(file)
			if err != nil {
				fmt.Printf("error: cannot stat %s: %v\n", file, err)
				record(file, "failed", err.Error())
				failed++
				continue
			}
			if err := os.WriteFile(file, out, info.Mode().Perm()); err != nil {
				fmt.Printf("error: cannot write %s: %v\n", file, err)
				record(file, "failed", err.Error())
				failed++
				continue
			}

			fmt.Printf("converted: %s -> %s\n", file, style)
			record(file, "success", "")
			converted++
		}
	}

	fmt.Printf("eol: %d converted, %d skipped, %d failed\n", converted, skipped, failed)

	if !opts.NoJournal && len(run.Entries) > 0 {
		recordEolRun(run)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func recordEolRun(run journal.Run) {
	path, err := journal.DefaultPath()
	if err != nil {
		return
	}
	j, err := journal.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open journal: %v\n", err)
		return
	}
	defer j.Close()
	if err := j.Record(run); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot record journal entry: %v\n", err)
	}
}
