package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/live-labs/shed/internal/netcheck"
)

// Tcp sends a payload to a TCP address and prints whatever comes back
func Tcp(ctx context.Context, addr, payload string, crlf bool, timeout time.Duration) {
	data := []byte(payload)
	if crlf {
		data = append(data, '\r', '\n')
	}

	response, err := netcheck.Request(ctx, addr, data, timeout)
	if err != nil {
		HandleError(err)
	}

	os.Stdout.Write(response)
	if len(response) > 0 && response[len(response)-1] != '\n' {
		fmt.Println()
	}
}
