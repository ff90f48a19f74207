package cmd

import (
	"fmt"

	"github.com/live-labs/shed/internal/prune"
)

// Prune removes outdated versioned directories under root
func Prune(root string, dryRun bool) {
	removals, err := prune.Run(root, dryRun)
	if err != nil {
		HandleError(err)
	}

	for _, r := range removals {
		if dryRun {
			fmt.Printf("would remove: %s %s\n", r.Name, r.Version)
		} else {
			fmt.Printf("removed: %s %s\n", r.Name, r.Version)
		}
	}

	if len(removals) == 0 {
		fmt.Println("Nothing to prune")
		return
	}
	fmt.Printf("pruned: %d outdated versions\n", len(removals))
}
