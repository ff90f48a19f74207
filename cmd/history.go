package cmd

import (
	"fmt"

	"github.com/live-labs/shed/internal/journal"
)

// History lists recent journaled runs. When keep >= 0, older runs are
// pruned down to that count and the database is compacted instead.
func History(limit, keep int, verbose bool) {
	path, err := journal.DefaultPath()
	if err != nil {
		HandleError(err)
	}

	j, err := journal.Open(path)
	if err != nil {
		HandleError(fmt.Errorf("cannot open journal: %w", err))
	}
	defer j.Close()

	if keep >= 0 {
		removed, err := j.Prune(keep)
		if err != nil {
			HandleError(fmt.Errorf("cannot prune journal: %w", err))
		}
		if err := j.Compact(); err != nil {
			HandleError(fmt.Errorf("cannot compact journal: %w", err))
		}
		fmt.Printf("pruned: %d runs removed, %d kept\n", removed, keep)
		return
	}

	runs, err := j.Runs(limit)
	if err != nil {
		HandleError(fmt.Errorf("cannot read journal: %w", err))
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs")
		return
	}

	for _, run := range runs {
		ok, failed := 0, 0
		for _, e := range run.Entries {
			if e.Error != "" {
				failed++
			} else {
				ok++
			}
		}
		fmt.Printf("%s  %-8s  %d files (%d failed)\n",
			run.Started.Format("2006-01-02 15:04:05"), run.Command, len(run.Entries), failed)

		if verbose {
			for _, e := range run.Entries {
				if e.Error != "" {
					fmt.Printf("    %s: %s (%s)\n", e.Status, e.Input, e.Error)
				} else {
					fmt.Printf("    %s: %s -> %s\n", e.Status, e.Input, e.Output)
				}
			}
		}
	}
}
