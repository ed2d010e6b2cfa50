package metrics

import "time"

// Deletes buckets older than max allowed metric age based on supplied current time
func (registry *Registry) Prune(currentTime time.Time, maxAge time.Duration) (removed int) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	keep := registry.buckets[:0]
	for _, b := range registry.buckets {
		if currentTime.Sub(b.start) > maxAge {
			removed++
			continue
		}
		keep = append(keep, b)
	}
	clear(registry.buckets[len(keep):])
	registry.buckets = keep
	return
}
