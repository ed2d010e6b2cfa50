package beats

import (
	"aisfeed/internal/output"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Subset of the lumberjack sync client used for delivery
type sink interface {
	Send(events []interface{}) (int, error)
	Close() error
}

type dialFunc func(address string, compression int, timeout time.Duration) (sink, error)

// Forwards records as events to a beats (lumberjack v2) server
type OutModule struct {
	id        string
	Namespace []string

	host        string
	port        string
	timeout     int // seconds
	compression int
	lines       *output.Lines

	mu      sync.Mutex // serializes delivery against Start/Stop
	sink    sink       // nil after a failed batch until redialed
	running bool
	dial    dialFunc
	redial  *rate.Limiter
	now     func() time.Time

	Metrics *output.MetricStorage
}
