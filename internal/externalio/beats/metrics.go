package beats

import (
	"aisfeed/internal/metrics"
	"time"
)

func (mod *OutModule) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	collection = mod.Metrics.Collect(mod.Namespace, interval)
	return
}
