package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/shed/internal/core"
	"github.com/live-labs/shed/internal/journal"
	"github.com/live-labs/shed/internal/keyring"
)

// GetPassword resolves a passphrase without confirmation: environment
// variable first, then the OS keyring when a profile is named, then an
// interactive prompt. The caller must clear the returned bytes.
func GetPassword(prompt, keyringProfile string) ([]byte, error) {
	if password := core.GetPasswordFromEnv(); password != nil {
		return password, nil
	}

	if keyringProfile != "" {
		if stored, err := keyring.GetPassword(keyringProfile); err == nil {
			return []byte(stored), nil
		}
		fmt.Fprintf(os.Stderr, "warning: no keyring entry for profile %q\n", keyringProfile)
	}

	password, err := core.ReadPassword(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// GetPasswordConfirm is GetPassword with a confirmation prompt when
// the passphrase has to be typed, used for encryption so a typo does
// not lock data behind an unknown passphrase.
func GetPasswordConfirm(keyringProfile string) ([]byte, error) {
	if password := core.GetPasswordFromEnv(); password != nil {
		return password, nil
	}

	if keyringProfile != "" {
		if stored, err := keyring.GetPassword(keyringProfile); err == nil {
			return []byte(stored), nil
		}
		fmt.Fprintf(os.Stderr, "warning: no keyring entry for profile %q\n", keyringProfile)
	}

	return core.ReadPasswordConfirm()
}

// HandleError prints an error and exits
func HandleError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

// reportResults prints one line per file and a closing summary, then
// returns the tally.
func reportResults(verb string, results []core.Result) core.Summary {
	for _, r := range results {
		switch r.Status {
		case core.StatusSuccess:
			fmt.Printf("%s: %s -> %s\n", verb, r.Input, r.Output)
		case core.StatusSkippedExists:
			fmt.Printf("skipped: %s (output %s exists, use --force)\n", r.Input, r.Output)
		case core.StatusPlanned:
			fmt.Printf("would %s: %s -> %s\n", verb, r.Input, r.Output)
		case core.StatusFailed:
			fmt.Printf("error: %s: %v\n", r.Input, r.Err)
		}
	}

	s := core.Summarize(results)
	fmt.Printf("%s: %d ok, %d skipped, %d failed\n", verb, s.Success+s.Planned, s.Skipped, s.Failed)
	return s
}

// writeJournal records a finished batch, best effort. Journal trouble
// is a warning and never changes the command's outcome.
func writeJournal(command string, results []core.Result, disabled bool) {
	if disabled || len(results) == 0 {
		return
	}

	path, err := journal.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: journal disabled: %v\n", err)
		return
	}

	j, err := journal.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open journal: %v\n", err)
		return
	}
	defer j.Close()

	run := journal.NewRun(command)
	for _, r := range results {
		entry := journal.Entry{
			Input:  r.Input,
			Output: r.Output,
			Status: r.Status.String(),
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		run.Entries = append(run.Entries, entry)
	}

	if err := j.Record(run); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot record journal entry: %v\n", err)
	}
}
