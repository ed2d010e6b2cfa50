package metrics

import (
	"sync"
	"time"
)

type Registry struct {
	mu      sync.RWMutex
	buckets []bucket // ordered oldest -> newest
}

// All metrics recorded within one collection interval
type bucket struct {
	start   time.Time
	entries map[string]Metric // key=namespace path + "|" + name
}

type MetricType string

const (
	Counter MetricType = "counter" // always increasing
	Gauge   MetricType = "gauge"   // can go up/down
)

// Container for a metric and associated data
type Metric struct {
	Name        string // e.g. records_sent, pending_bytes
	Description string
	Namespace   []string // e.g. "Output/HTTP/3f2a1c0d"
	Value       MetricValue
	Type        MetricType
	Timestamp   time.Time // time when the metric was recorded
}

// Specific value of a metric
type MetricValue struct {
	Raw      interface{}   // uint64, int, float64
	Unit     string        // e.g., "count", "bytes"
	Interval time.Duration // measurement window
}

// JSON version
type JMetric struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Namespace   string       `json:"namespace"`
	Value       JMetricValue `json:"value"`
	Type        string       `json:"type"`
	Timestamp   string       `json:"timestamp"`
}

// Specific value of a metric
type JMetricValue struct {
	Raw      string `json:"raw"`
	Unit     string `json:"unit"`
	Interval string `json:"interval"`
}
