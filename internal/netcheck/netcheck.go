// Package netcheck provides small connectivity probes: a TCP/UDP port
// reachability test and a raw TCP request helper.
package netcheck

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

// DefaultTimeout bounds a single probe when the caller gives none.
const DefaultTimeout = 5 * time.Second

// PortResult is the outcome of one port probe.
type PortResult struct {
	Address string
	Open    bool
	Latency time.Duration
	Err     error
}

// TestPort probes host:port over the given network ("tcp" or "udp").
//
// TCP reports open on a completed handshake. UDP is connectionless, so
// a datagram is sent and a short read attempted: an ICMP refusal
// surfaces as closed, while silence is reported open (open|filtered in
// scanner terms) because no answer proves nothing either way.
func TestPort(ctx context.Context, network, host string, port int, timeout time.Duration) PortResult {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	result := PortResult{Address: addr}

	dialer := net.Dialer{Timeout: timeout}
	start := time.Now()

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := dialer.DialContext(dialCtx, network, addr)
	if err != nil {
		result.Err = err
		return result
	}
	defer conn.Close()
	result.Latency = time.Since(start)

	if network == "tcp" {
		result.Open = true
		return result
	}

	// UDP: send a probe datagram and listen briefly for a reply or a
	// port-unreachable rejection.
	if _, err := conn.Write([]byte{0}); err != nil {
		result.Err = err
		return result
	}
	conn.SetReadDeadline(time.Now().Add(timeout / 2))
	buf := make([]byte, 1)
	_, err = conn.Read(buf)
	switch {
	case err == nil:
		result.Open = true
	case isTimeout(err):
		// No rejection within the window; assume open or filtered
		result.Open = true
	default:
		result.Err = err
	}
	result.Latency = time.Since(start)
	return result
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}

// Request dials a TCP address, writes payload, and reads the response
// until the peer closes the connection or the timeout expires.
func Request(ctx context.Context, addr string, payload []byte, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := net.Dialer{Timeout: timeout}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to %s: %w", addr, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	conn.SetDeadline(deadline)

	if len(payload) > 0 {
		if _, err := conn.Write(payload); err != nil {
			return nil, fmt.Errorf("cannot write to %s: %w", addr, err)
		}
	}

	response, err := io.ReadAll(conn)
	if err != nil && !isTimeout(err) {
		return response, fmt.Errorf("cannot read from %s: %w", addr, err)
	}
	return response, nil
}
