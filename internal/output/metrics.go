package output

import (
	"aisfeed/internal/metrics"
	"time"
)

// Reads and clears the shared counters
func (storage *MetricStorage) Collect(namespace []string, interval time.Duration) (collection []metrics.Metric) {
	records := storage.Records.Swap(0)
	bytes := storage.Bytes.Swap(0)
	failures := storage.Failures.Swap(0)
	filtered := storage.Filtered.Swap(0)

	recordTime := time.Now()

	collection = []metrics.Metric{
		{
			Name:        "records_sent",
			Description: "Records handed to the transport in the interval",
			Namespace:   namespace,
			Value:       metrics.MetricValue{Raw: records, Unit: "count", Interval: interval},
			Type:        metrics.Gauge,
			Timestamp:   recordTime,
		},
		{
			Name:        "bytes_sent",
			Description: "Payload bytes handed to the transport in the interval",
			Namespace:   namespace,
			Value:       metrics.MetricValue{Raw: bytes, Unit: "bytes", Interval: interval},
			Type:        metrics.Gauge,
			Timestamp:   recordTime,
		},
		{
			Name:        "send_failures",
			Description: "Failed transport writes in the interval",
			Namespace:   namespace,
			Value:       metrics.MetricValue{Raw: failures, Unit: "count", Interval: interval},
			Type:        metrics.Gauge,
			Timestamp:   recordTime,
		},
		{
			Name:        "records_filtered",
			Description: "Records rejected by group or filter in the interval",
			Namespace:   namespace,
			Value:       metrics.MetricValue{Raw: filtered, Unit: "count", Interval: interval},
			Type:        metrics.Gauge,
			Timestamp:   recordTime,
		},
	}
	return
}

// Extra gauge for adapter specific values
func Gauge(namespace []string, interval time.Duration, name, description, unit string, value any) (metric metrics.Metric) {
	metric = metrics.Metric{
		Name:        name,
		Description: description,
		Namespace:   namespace,
		Value:       metrics.MetricValue{Raw: value, Unit: unit, Interval: interval},
		Type:        metrics.Gauge,
		Timestamp:   time.Now(),
	}
	return
}
