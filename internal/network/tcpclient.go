package network

import (
	"aisfeed/internal/global"
	"aisfeed/internal/logctx"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

var ErrNotConnected = errors.New("not connected")

// Single outbound TCP connection. Persistent clients redial on demand,
// paced by a limiter so a dead peer is not hammered on every record.
type TCPClient struct {
	address      string
	persistent   bool
	writeTimeout time.Duration

	mu        sync.Mutex // serializes sends and dials
	conn      net.Conn
	reconnect *rate.Limiter
	dialer    net.Dialer

	live   atomic.Pointer[liveConn] // same connection as conn, closable without mu
	closed atomic.Bool
}

type liveConn struct {
	net.Conn
}

func NewTCPClient(address string, persistent bool) (client *TCPClient) {
	client = &TCPClient{
		address:      address,
		persistent:   persistent,
		writeTimeout: global.TCPWriteTimeout,
		reconnect:    rate.NewLimiter(rate.Every(global.TCPReconnectInterval), 1),
		dialer:       net.Dialer{Timeout: global.TCPConnectTimeout},
	}
	return
}

// Deadline for each write
func (client *TCPClient) SetWriteTimeout(timeout time.Duration) {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.writeTimeout = timeout
}

// Minimum spacing between redial attempts
func (client *TCPClient) SetReconnectInterval(interval time.Duration) {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.reconnect = rate.NewLimiter(rate.Every(interval), 1)
}

// One connect attempt
func (client *TCPClient) Connect(ctx context.Context) (err error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	// Counts against the reconnect budget
	client.reconnect.Allow()
	err = client.connect(ctx)
	return
}

// Caller holds mu
func (client *TCPClient) connect(ctx context.Context) (err error) {
	client.drop()
	if client.closed.Load() {
		err = fmt.Errorf("connect to %s: %w", client.address, net.ErrClosed)
		return
	}

	conn, err := client.dialer.DialContext(ctx, "tcp", client.address)
	if err != nil {
		err = fmt.Errorf("failed to connect to %s: %w", client.address, err)
		return
	}
	client.conn = conn
	client.live.Store(&liveConn{conn})

	// Close raced with the dial
	if client.closed.Load() {
		client.drop()
		err = fmt.Errorf("connect to %s: %w", client.address, net.ErrClosed)
	}
	return
}

// Caller holds mu
func (client *TCPClient) drop() {
	if client.conn != nil {
		client.conn.Close()
		client.conn = nil
	}
	client.live.Store(nil)
}

// Caller holds mu
func (client *TCPClient) write(data []byte) (err error) {
	client.conn.SetWriteDeadline(time.Now().Add(client.writeTimeout))
	_, err = client.conn.Write(data)
	return
}

// Writes data. On failure a persistent client redials (when the limiter allows) and retries once.
func (client *TCPClient) Send(ctx context.Context, data []byte) (err error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.conn != nil {
		err = client.write(data)
		if err == nil {
			return
		}
		client.drop()
		err = fmt.Errorf("send to %s failed: %w", client.address, err)
	} else {
		err = fmt.Errorf("send to %s failed: %w", client.address, ErrNotConnected)
	}

	if !client.persistent || client.closed.Load() || !client.reconnect.Allow() {
		return
	}

	connErr := client.connect(ctx)
	if connErr != nil {
		err = errors.Join(err, connErr)
		return
	}
	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
		"reconnected to %s\n", client.address)

	err = client.write(data)
	if err != nil {
		client.drop()
		err = fmt.Errorf("send to %s failed after reconnect: %w", client.address, err)
	}
	return
}

func (client *TCPClient) Connected() (connected bool) {
	client.mu.Lock()
	defer client.mu.Unlock()
	connected = client.conn != nil
	return
}

func (client *TCPClient) Disconnect() {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.drop()
}

// Closes the connection for good without waiting for an in-flight send.
// Later sends fail and never redial.
func (client *TCPClient) Close() {
	client.closed.Store(true)
	if conn := client.live.Swap(nil); conn != nil {
		conn.Close()
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	client.drop()
}
