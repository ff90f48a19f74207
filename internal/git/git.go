// Package git answers one question for the encrypt command: is a file
// about to be encrypted also committed to version control? Encrypting
// a tracked plaintext is usually a sign the secret already leaked into
// history, so the command warns about it.
package git

import (
	"os/exec"
	"strings"
)

// IsRepo checks if the working directory is inside a git repository
func IsRepo(workDir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = workDir
	return cmd.Run() == nil
}

// IsTracked checks if a file is tracked by git
func IsTracked(workDir, path string) bool {
	cmd := exec.Command("git", "ls-files", "--", path)
	cmd.Dir = workDir
	output, err := cmd.Output()
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(output))) > 0
}
