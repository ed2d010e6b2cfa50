package httpout

import (
	"aisfeed/internal/metrics"
	"aisfeed/internal/output"
	"time"
)

func (mod *OutModule) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	collection = mod.Metrics.Collect(mod.Namespace, interval)

	pending, pendingBytes := mod.queue.Pending()
	collection = append(collection,
		output.Gauge(mod.Namespace, interval, "flushes", "Envelopes posted in the interval", "count", mod.Metrics.Flushes.Swap(0)),
		output.Gauge(mod.Namespace, interval, "failed_posts", "Posts that errored or returned non-200 in the interval", "count", mod.Metrics.FailedPosts.Swap(0)),
		output.Gauge(mod.Namespace, interval, "records_dropped", "Records refused by the memory guard in the interval", "count", mod.Metrics.Dropped.Swap(0)),
		output.Gauge(mod.Namespace, interval, "pending_records", "Records waiting for the next flush", "count", pending),
		output.Gauge(mod.Namespace, interval, "pending_bytes", "Bytes waiting for the next flush", "bytes", pendingBytes),
	)
	return
}
