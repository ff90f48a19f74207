package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/shed/internal/core"
	"github.com/live-labs/shed/internal/crypto"
	"github.com/live-labs/shed/internal/keyring"
)

// Keyring manages cached passphrases in the OS keyring
func Keyring(action, profile string) {
	if profile == "" {
		fmt.Fprintln(os.Stderr, "Error: profile name required")
		os.Exit(1)
	}

	switch action {
	case "save":
		password, err := core.ReadPasswordConfirm()
		if err != nil {
			HandleError(err)
		}
		defer crypto.ClearBytes(password)

		if err := keyring.SavePassword(profile, string(password)); err != nil {
			HandleError(fmt.Errorf("cannot save to keyring: %w", err))
		}
		fmt.Printf("saved: passphrase for profile %q\n", profile)

	case "delete":
		if err := keyring.DeletePassword(profile); err != nil {
			HandleError(fmt.Errorf("cannot delete from keyring: %w", err))
		}
		fmt.Printf("deleted: passphrase for profile %q\n", profile)

	case "check":
		if keyring.HasPassword(profile) {
			fmt.Printf("profile %q has a stored passphrase\n", profile)
		} else {
			fmt.Printf("profile %q has no stored passphrase\n", profile)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring action: %s\nSupported: save, delete, check\n", action)
		os.Exit(1)
	}
}
