package netcheck

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"
)

// startEchoServer listens on a random port and echoes one request back
// with a prefix, then closes the connection.
func startEchoServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("cannot listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				buf := make([]byte, 1024)
				n, err := c.Read(buf)
				if err != nil {
					return
				}
				c.Write(append([]byte("echo:"), buf[:n]...))
			}(conn)
		}
	}()

	return ln.Addr().String()
}

func splitAddr(t *testing.T, addr string) (string, int) {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("bad address %s: %v", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("bad port %s: %v", portStr, err)
	}
	return host, port
}

func TestTestPortOpen(t *testing.T) {
	addr := startEchoServer(t)
	host, port := splitAddr(t, addr)

	result := TestPort(context.Background(), "tcp", host, port, time.Second)
	if !result.Open {
		t.Errorf("expected open port, got %+v", result)
	}
	if result.Err != nil {
		t.Errorf("unexpected error: %v", result.Err)
	}
}

func TestTestPortClosed(t *testing.T) {
	// Grab a port and release it so nothing is listening there
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	host, port := splitAddr(t, ln.Addr().String())
	ln.Close()

	result := TestPort(context.Background(), "tcp", host, port, time.Second)
	if result.Open {
		t.Error("expected closed port")
	}
	if result.Err == nil {
		t.Error("expected a connection error")
	}
}

func TestRequestRoundTrip(t *testing.T) {
	addr := startEchoServer(t)

	response, err := Request(context.Background(), addr, []byte("ping"), 2*time.Second)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if string(response) != "echo:ping" {
		t.Errorf("response = %q", response)
	}
}

func TestRequestConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	if _, err := Request(context.Background(), addr, []byte("x"), time.Second); err == nil {
		t.Error("expected error for refused connection")
	}
}
