package server

import (
	"aisfeed/internal/metrics"
	"context"
	"time"
)

type httpLogWriter struct {
	ctx context.Context
}

type Jerror struct {
	Msg string `json:"error"`
}

type JTotal struct {
	Name      string  `json:"name"`
	Namespace string  `json:"namespace"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Total     float64 `json:"total"`
}

type DataSearcher func(name string, namespacePrefix []string, start, end time.Time) []metrics.Metric
type TotalSearcher func(name string, namespacePrefix []string, start, end time.Time) (total float64, err error)
