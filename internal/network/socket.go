// Socket helpers shared by the streaming outputs
package network

import (
	"context"
	"fmt"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// Sets a boolean SOL_SOCKET option on the raw descriptor before bind/connect
func socketOption(option int) func(network, address string, c syscall.RawConn) error {
	return func(network, address string, c syscall.RawConn) error {
		var err error
		ctrlErr := c.Control(func(fd uintptr) {
			// Using x/sys/unix package for more up-to-date syscall numbers
			err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, option, 1)
		})
		if ctrlErr != nil {
			return ctrlErr
		}
		return err
	}
}

// Connects a UDP socket to address. Broadcast enables SO_BROADCAST first.
func DialUDP(ctx context.Context, address string, broadcast bool) (conn *net.UDPConn, err error) {
	var dialer net.Dialer
	if broadcast {
		dialer.Control = socketOption(unix.SO_BROADCAST)
	}

	c, err := dialer.DialContext(ctx, "udp", address)
	if err != nil {
		err = fmt.Errorf("failed to open udp socket to %s: %w", address, err)
		return
	}
	conn = c.(*net.UDPConn)
	return
}

// Listens for TCP with SO_REUSEADDR so a restarted server can rebind immediately
func ListenTCP(ctx context.Context, address string) (listener net.Listener, err error) {
	cfg := net.ListenConfig{
		Control: socketOption(unix.SO_REUSEADDR),
	}

	listener, err = cfg.Listen(ctx, "tcp", address)
	if err != nil {
		err = fmt.Errorf("failed to listen on %s: %w", address, err)
		return
	}
	return
}
