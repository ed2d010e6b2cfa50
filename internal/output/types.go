// Contract shared by every output and the line rendering the streaming outputs use
package output

import (
	"aisfeed/internal/filter"
	"aisfeed/internal/metrics"
	"aisfeed/pkg/ais"
	"context"
	"sync/atomic"
	"time"
)

type Output interface {
	// Adapter kind, e.g. HTTP
	Name() (name string)
	// Applies one option, case-insensitive. Fluent.
	Set(option string, arg string) (self Output, err error)
	Start(ctx context.Context) (err error)
	// Synchronous; background work has ceased on return
	Stop(ctx context.Context)
	ReceiveMessages(ctx context.Context, msgs []ais.Message, tag ais.Tag)
	ReceiveFixes(ctx context.Context, fixes []ais.Fix, tag ais.Tag)
	CollectMetrics(interval time.Duration) (collection []metrics.Metric)
}

// Asks the owning pipeline to shut down. Called by outputs that cannot recover.
type StopRequester interface {
	RequestStop(reason string)
}

type StopFunc func(reason string)

func (fn StopFunc) RequestStop(reason string) {
	fn(reason)
}

// Options common to the line oriented outputs
type Lines struct {
	JSON   bool
	Groups uint64 // GROUPS_IN mask
	Filter filter.Filter
}

type MetricStorage struct {
	Records  atomic.Uint64 // lines or records handed to the transport
	Bytes    atomic.Uint64
	Failures atomic.Uint64
	Filtered atomic.Uint64
}
