package daemon

import (
	"aisfeed/internal/global"
	"aisfeed/internal/logctx"
	"aisfeed/internal/metrics"
	"aisfeed/internal/output"
	"context"
	"runtime/debug"
	"time"
)

func NewGatherer(interval time.Duration, retention time.Duration, registry *metrics.Registry, sources func() []output.Output) (new *Gatherer) {
	new = &Gatherer{
		Interval:  interval,
		Retention: retention,
		Registry:  registry,
		Sources:   sources,
	}
	return
}

func (gatherer *Gatherer) Run(ctx context.Context) {
	ctx = logctx.AppendCtxTag(ctx, global.NSMetric)

	ticker := time.NewTicker(gatherer.Interval)
	defer ticker.Stop()

	// Ticks between registry cleanups
	var tickCount int

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			gatherer.Collect(ctx, now)

			tickCount++
			if tickCount >= 30 {
				gatherer.Registry.Prune(now, gatherer.Retention)
				tickCount = 0
			}
		}
	}
}

// Reads every output once into the time slice for now
func (gatherer *Gatherer) Collect(ctx context.Context, now time.Time) {
	// Record panics and continue on next interval
	defer func() {
		if fatalError := recover(); fatalError != nil {
			stack := debug.Stack()
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"panic in metric collector thread: %v\n%s", fatalError, stack)
		}
	}()

	for _, out := range gatherer.Sources() {
		collection := out.CollectMetrics(gatherer.Interval)
		gatherer.Registry.Add(now, gatherer.Interval, collection)
	}
}
