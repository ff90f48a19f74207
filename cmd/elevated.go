package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/shed/internal/sysinfo"
)

// Elevated reports whether the process has administrative privileges,
// exiting 0 when elevated and 1 otherwise so scripts can branch on it.
func Elevated() {
	if sysinfo.IsElevated() {
		fmt.Println("elevated")
		return
	}
	fmt.Println("not elevated")
	os.Exit(1)
}
