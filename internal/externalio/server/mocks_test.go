package server

import (
	"aisfeed/internal/metrics"
	"time"
)

func mockDataSearcher(results []metrics.Metric) DataSearcher {
	return func(name string, ns []string, start, end time.Time) []metrics.Metric {
		return results
	}
}

func mockTotalSearcher(total float64, err error) TotalSearcher {
	return func(name string, ns []string, start, end time.Time) (float64, error) {
		return total, err
	}
}
