package httpout

import (
	"aisfeed/internal/compress"
	"aisfeed/internal/filter"
	"aisfeed/internal/output"
	"aisfeed/pkg/ais"
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type Protocol string

const (
	ProtocolAISCatcher Protocol = "AISCATCHER"
	ProtocolMinimal    Protocol = "MINIMAL"
	ProtocolAirframes  Protocol = "AIRFRAMES"
	ProtocolAPRS       Protocol = "APRS"
	ProtocolList       Protocol = "LIST"
)

// Batched HTTP output
type OutModule struct {
	id        string
	Namespace []string

	// Destination
	url       string
	userpwd   string
	timeout   int // seconds
	interval  int // seconds between flushes
	test      bool
	gzip      bool
	response  bool
	protocol  Protocol
	stationID string

	// Envelope metadata
	model         string
	modelSetting  string
	product       string
	vendor        string
	serial        string
	deviceSetting string
	lat           float64
	lon           float64

	groups  uint64
	filter  filter.Filter
	builder *ais.Builder
	zip     compress.Compressor
	poster  Poster

	queue *Queue
	tick  time.Duration
	now   func() time.Time

	mu      sync.Mutex // guards cancel/done across Start/Stop
	cancel  context.CancelFunc
	done    chan struct{}
	running bool

	Metrics *MetricStorage
}

type MetricStorage struct {
	output.MetricStorage
	Flushes     atomic.Uint64
	FailedPosts atomic.Uint64
	Dropped     atomic.Uint64 // memory guard
}

// Pending serialized records between flushes
type Queue struct {
	mu      sync.Mutex
	records []string
	bytes   uint64
	limit   uint64 // max pending bytes, 0 = unlimited
}
