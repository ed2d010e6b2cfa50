package metrics

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Supports exact match or prefix match. Empty query matches all.
func matchesNamespace(metricNS, queryNS []string) (matches bool) {
	if len(metricNS) < len(queryNS) {
		return
	}
	for i := range queryNS {
		if metricNS[i] != queryNS[i] {
			return
		}
	}
	matches = true
	return
}

// Returns all metrics matching given name and namespace prefix, oldest bucket first.
// Empty name or prefix matches everything; zero start/end leaves the window open.
func (registry *Registry) Search(name string, namespacePrefix []string, start, end time.Time) (results []Metric) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for _, b := range registry.buckets {
		if !start.IsZero() && b.start.Before(start) {
			continue
		}
		if !end.IsZero() && b.start.After(end) {
			continue
		}

		var inBucket []Metric
		for _, metric := range b.entries {
			if name != "" && metric.Name != name {
				continue
			}
			if !matchesNamespace(metric.Namespace, namespacePrefix) {
				continue
			}
			inBucket = append(inBucket, metric)
		}
		sort.Slice(inBucket, func(i, j int) bool {
			return entryKey(inBucket[i]) < entryKey(inBucket[j])
		})
		results = append(results, inBucket...)
	}
	return
}

// Sums every matching metric value inside the window
func (registry *Registry) Total(name string, namespacePrefix []string, start, end time.Time) (total float64, err error) {
	results := registry.Search(name, namespacePrefix, start, end)
	if len(results) == 0 {
		err = fmt.Errorf("no metrics named %q found", name)
		return
	}

	for _, metric := range results {
		var value float64
		value, err = toFloat(metric.Value.Raw)
		if err != nil {
			err = fmt.Errorf("metric %q: %w", name, err)
			return
		}
		total += value
	}
	return
}

func toFloat(raw interface{}) (value float64, err error) {
	switch v := raw.(type) {
	case uint64:
		value = float64(v)
	case int64:
		value = float64(v)
	case int:
		value = float64(v)
	case float64:
		value = v
	case string:
		value, err = strconv.ParseFloat(v, 64)
	default:
		err = fmt.Errorf("non-numeric value of type %T", raw)
	}
	return
}
