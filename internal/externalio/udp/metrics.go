package udp

import (
	"aisfeed/internal/metrics"
	"aisfeed/internal/output"
	"time"
)

func (mod *OutModule) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	collection = mod.Metrics.Collect(mod.Namespace, interval)
	collection = append(collection,
		output.Gauge(mod.Namespace, interval, "socket_resets", "Socket recreations in the interval", "count", mod.Metrics.Resets.Swap(0)),
		output.Gauge(mod.Namespace, interval, "oversize_datagrams", "Datagrams larger than the path payload in the interval", "count", mod.Metrics.Oversize.Swap(0)),
	)
	return
}
