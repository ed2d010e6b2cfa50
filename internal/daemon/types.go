package daemon

import (
	"aisfeed/internal/metrics"
	"aisfeed/internal/output"
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

type Config struct {
	MetricCollectionInterval time.Duration
	MetricMaxAge             time.Duration
	ShutdownTimeout          time.Duration

	// Metric query server, disabled when empty (e.g. 127.0.0.1:8089)
	MetricQueryAddress string
}

// Owns the configured outputs for the lifetime of the process
type Daemon struct {
	cfg    Config
	ctx    context.Context
	cancel context.CancelFunc
	outCtx context.Context // daemon context without cancellation, handed to outputs

	stopOnce   sync.Once
	stopReason atomic.Pointer[string]

	mu      sync.RWMutex // guards outputs and started
	outputs []output.Output
	started int // outputs[:started] are running

	wg           sync.WaitGroup
	gatherer     *Gatherer
	Registry     *metrics.Registry
	MetricServer *http.Server
	metricAddr   net.Addr
}

// Periodically pulls CollectMetrics from every output into the registry
type Gatherer struct {
	Interval  time.Duration
	Retention time.Duration
	Registry  *metrics.Registry
	Sources   func() []output.Output
}
