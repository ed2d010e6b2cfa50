package tcpclient

import (
	"aisfeed/internal/metrics"
	"aisfeed/internal/output"
	"time"
)

func (mod *OutModule) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	collection = mod.Metrics.Collect(mod.Namespace, interval)

	connected := 0
	mod.mu.Lock()
	if mod.running && mod.client.Connected() {
		connected = 1
	}
	mod.mu.Unlock()

	collection = append(collection,
		output.Gauge(mod.Namespace, interval, "connected", "1 while the feed holds a connection", "bool", connected))
	return
}
