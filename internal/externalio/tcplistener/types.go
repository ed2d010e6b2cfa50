package tcplistener

import (
	"aisfeed/internal/network"
	"aisfeed/internal/output"
	"sync"
)

// Broadcasts rendered lines to every connected client
type OutModule struct {
	id        string
	Namespace []string

	port    string
	timeout int // seconds per client write, 0 = default deadline
	lines   *output.Lines

	mu      sync.Mutex // guards server across Start/Stop
	server  *network.Server
	running bool

	Metrics *output.MetricStorage
}
