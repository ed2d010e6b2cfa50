package metrics

import (
	"strings"
	"testing"
	"time"
)

func setupRegistryWithData(t *testing.T) (mockRegistry *Registry, mockedTimeSlices map[string]time.Time) {
	t.Helper()

	mockRegistry = New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	interval := time.Minute

	// Added out of order on purpose
	ts2 := mockRegistry.Add(base.Add(1*time.Minute+10*time.Second), interval, []Metric{
		{
			Name:      "records_sent",
			Namespace: []string{"Output", "UDP", "a"},
			Type:      Counter,
			Value:     MetricValue{Raw: uint64(20), Unit: "count", Interval: interval},
		},
		{
			Name:      "records_sent",
			Namespace: []string{"Output", "HTTP", "b"},
			Type:      Counter,
			Value:     MetricValue{Raw: 5, Unit: "count", Interval: interval},
		},
	})
	ts1 := mockRegistry.Add(base, interval, []Metric{
		{
			Name:      "records_sent",
			Namespace: []string{"Output", "UDP", "a"},
			Type:      Counter,
			Value:     MetricValue{Raw: uint64(10), Unit: "count", Interval: interval},
		},
		{
			Name:      "pending_bytes",
			Namespace: []string{"Output", "HTTP", "b"},
			Type:      Gauge,
			Value:     MetricValue{Raw: "512", Unit: "bytes", Interval: interval},
		},
	})
	ts3 := mockRegistry.Add(base.Add(2*time.Minute), interval, []Metric{
		{
			Name:      "records_sent",
			Namespace: []string{"Output", "UDP", "a"},
			Type:      Counter,
			Value:     MetricValue{Raw: 1.5, Unit: "count", Interval: interval},
		},
		{
			Name:      "bad_metric",
			Namespace: []string{"Output", "UDP", "a"},
			Type:      Gauge,
			Value:     MetricValue{Raw: struct{}{}, Unit: "count", Interval: interval},
		},
	})

	mockedTimeSlices = map[string]time.Time{
		"ts1": ts1,
		"ts2": ts2,
		"ts3": ts3,
	}
	return
}

func TestRegistry_AddTruncatesAndOrders(t *testing.T) {
	reg, ts := setupRegistryWithData(t)

	if !ts["ts2"].Equal(time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC)) {
		t.Fatalf("expected bucket start truncated to interval, got %v", ts["ts2"])
	}
	if len(reg.buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(reg.buckets))
	}
	for i := 1; i < len(reg.buckets); i++ {
		if !reg.buckets[i-1].start.Before(reg.buckets[i].start) {
			t.Fatalf("buckets out of order at %d", i)
		}
	}

	// Same bucket, same key replaces
	reg.Add(ts["ts1"].Add(time.Second), time.Minute, []Metric{{
		Name:      "records_sent",
		Namespace: []string{"Output", "UDP", "a"},
		Value:     MetricValue{Raw: uint64(99)},
	}})
	got := reg.Search("records_sent", []string{"Output", "UDP"}, ts["ts1"], ts["ts1"])
	if len(got) != 1 || got[0].Value.Raw != uint64(99) {
		t.Fatalf("expected replaced value 99, got %+v", got)
	}
}

func TestRegistry_Search(t *testing.T) {
	reg, ts := setupRegistryWithData(t)

	tests := []struct {
		name            string
		metricName      string
		namespacePrefix []string
		start           time.Time
		end             time.Time
		want            int
	}{
		{"all metrics", "", nil, time.Time{}, time.Time{}, 6},
		{"exact name only", "records", nil, time.Time{}, time.Time{}, 0},
		{"records_sent all namespaces", "records_sent", nil, time.Time{}, time.Time{}, 4},
		{"records_sent udp only", "records_sent", []string{"Output", "UDP"}, time.Time{}, time.Time{}, 3},
		{"prefix longer than namespace", "", []string{"Output", "UDP", "a", "extra"}, time.Time{}, time.Time{}, 0},
		{"time window exact bounds", "", nil, ts["ts2"], ts["ts3"], 4},
		{"single bucket", "", nil, ts["ts3"], ts["ts3"], 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := reg.Search(tt.metricName, tt.namespacePrefix, tt.start, tt.end)
			if len(results) != tt.want {
				t.Fatalf("expected %d results, got %d", tt.want, len(results))
			}
		})
	}
}

func TestRegistry_Total(t *testing.T) {
	reg, _ := setupRegistryWithData(t)

	tests := []struct {
		name      string
		metric    string
		ns        []string
		want      float64
		wantError bool
	}{
		{"mixed numeric types", "records_sent", []string{"Output", "UDP"}, 31.5, false},
		{"across namespaces", "records_sent", []string{"Output"}, 36.5, false},
		{"string numeric", "pending_bytes", nil, 512, false},
		{"non-numeric error", "bad_metric", nil, 0, true},
		{"missing metric", "missing", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Total(tt.metric, tt.ns, time.Time{}, time.Time{})
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRegistry_Prune(t *testing.T) {
	reg, ts := setupRegistryWithData(t)

	removed := reg.Prune(ts["ts3"].Add(30*time.Second), 1*time.Minute)
	if removed != 2 {
		t.Fatalf("expected 2 buckets pruned, got %d", removed)
	}

	for _, m := range reg.Search("", nil, time.Time{}, time.Time{}) {
		if m.Value.Raw == uint64(10) || m.Value.Raw == uint64(20) {
			t.Fatalf("unexpected metric from pruned bucket: %+v", m)
		}
	}
}

func TestConvertAndExport(t *testing.T) {
	in := Metric{
		Name:        "records_sent",
		Description: "records written",
		Namespace:   []string{"Output", "UDP"},
		Value:       MetricValue{Raw: uint64(45), Unit: "count", Interval: time.Second},
		Type:        Counter,
		Timestamp:   time.Date(2001, time.January, 1, 1, 1, 1, 1, time.UTC),
	}

	out := in.Convert()
	if out.Namespace != "Output/UDP" || out.Value.Raw != "45" || out.Value.Interval != "1s" {
		t.Fatalf("unexpected conversion: %+v", out)
	}
	if out.Timestamp != "2001-01-01T01:01:01.000000001Z" {
		t.Fatalf("unexpected timestamp %q", out.Timestamp)
	}

	blob, err := Export([]Metric{in})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(blob), `"namespace":"Output/UDP"`) {
		t.Fatalf("unexpected export: %s", blob)
	}
}
