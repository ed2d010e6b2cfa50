package metrics

import (
	"sort"
	"strings"
	"time"
)

func entryKey(metric Metric) (key string) {
	key = strings.Join(metric.Namespace, "/") + "|" + metric.Name
	return
}

// Records a batch of metrics into the bucket for the interval containing now.
// Later writes of the same namespace/name within one bucket replace earlier ones.
func (registry *Registry) Add(now time.Time, interval time.Duration, metrics []Metric) (bucketStart time.Time) {
	if interval > 0 {
		bucketStart = now.Truncate(interval)
	} else {
		bucketStart = now
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	idx := sort.Search(len(registry.buckets), func(i int) bool {
		return !registry.buckets[i].start.Before(bucketStart)
	})
	if idx == len(registry.buckets) || !registry.buckets[idx].start.Equal(bucketStart) {
		registry.buckets = append(registry.buckets, bucket{})
		copy(registry.buckets[idx+1:], registry.buckets[idx:])
		registry.buckets[idx] = bucket{
			start:   bucketStart,
			entries: make(map[string]Metric),
		}
	}

	for _, metric := range metrics {
		registry.buckets[idx].entries[entryKey(metric)] = metric
	}
	return
}
