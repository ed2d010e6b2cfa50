package tcpclient

import (
	"aisfeed/internal/network"
	"aisfeed/internal/output"
	"sync"
	"sync/atomic"
	"time"
)

// Streams rendered lines over one outbound TCP connection
type OutModule struct {
	id        string
	Namespace []string

	host       string
	port       string
	persistent bool
	lines      *output.Lines
	stop       output.StopRequester

	mu           sync.Mutex // serializes delivery against Start/Stop
	client       *network.TCPClient
	running      bool
	writeTimeout time.Duration
	active       atomic.Pointer[network.TCPClient] // closable by Stop while a send is in flight
	stopping     atomic.Bool
	terminated   atomic.Bool // termination already requested

	Metrics *output.MetricStorage
}
