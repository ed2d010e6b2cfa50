package udp

import (
	"aisfeed/internal/output"
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

type dialFunc func(ctx context.Context, address string, broadcast bool) (conn net.Conn, err error)

// One datagram per rendered line, with optional periodic socket recreation
type OutModule struct {
	id        string
	Namespace []string

	host      string
	port      string
	broadcast bool
	reset     int // minutes, 0 = never
	lines     *output.Lines
	stop      output.StopRequester

	mu         sync.Mutex // serializes delivery against Start/Stop
	conn       net.Conn
	address    string
	lastReset  time.Time
	running    bool
	failed     bool // socket could not be recreated, output is silent until restarted
	maxPayload int  // 0 when unknown

	now  func() time.Time
	dial dialFunc

	Metrics *MetricStorage
}

type MetricStorage struct {
	output.MetricStorage
	Resets   atomic.Uint64
	Oversize atomic.Uint64
}
