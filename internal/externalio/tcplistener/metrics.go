package tcplistener

import (
	"aisfeed/internal/metrics"
	"aisfeed/internal/output"
	"time"
)

func (mod *OutModule) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	collection = mod.Metrics.Collect(mod.Namespace, interval)

	var clients int
	var dropped uint64
	mod.mu.Lock()
	if mod.running {
		clients = mod.server.Clients()
		dropped = mod.server.TakeDrops()
	}
	mod.mu.Unlock()

	collection = append(collection,
		output.Gauge(mod.Namespace, interval, "clients", "Connected clients", "count", clients),
		output.Gauge(mod.Namespace, interval, "dropped_clients", "Clients removed after a failed or backed up write in the interval", "count", dropped),
	)
	return
}
