package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/live-labs/shed/internal/netcheck"
)

// Port probes one or more ports on a host and prints the outcome.
// Exits non-zero if any probed port is unreachable.
func Port(ctx context.Context, host string, ports []int, udp bool, timeout time.Duration) {
	network := "tcp"
	if udp {
		network = "udp"
	}

	closed := 0
	for _, port := range ports {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(os.Stderr, "interrupted")
			os.Exit(1)
		}

		result := netcheck.TestPort(ctx, network, host, port, timeout)
		if result.Open {
			fmt.Printf("open: %s/%s (%s)\n", result.Address, network, result.Latency.Round(time.Millisecond))
		} else {
			fmt.Printf("closed: %s/%s: %v\n", result.Address, network, result.Err)
			closed++
		}
	}

	if closed > 0 {
		os.Exit(1)
	}
}
