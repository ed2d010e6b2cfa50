package server

import (
	"aisfeed/internal/global"
	"aisfeed/internal/metrics"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

var errFutureStart = errors.New("relative start time must be in the past")

// Namespace components after the route prefix; empty matches everything
func requestNamespace(clientRequest *http.Request, prefix string) (namespace []string) {
	raw := strings.Trim(strings.TrimPrefix(clientRequest.URL.Path, prefix), "/")
	if raw != "" {
		namespace = strings.Split(raw, "/")
	}
	return
}

// Reads starttime/endtime. Start is RFC3339 or a negative duration (default last minute), end is RFC3339 or "now".
func requestWindow(clientRequest *http.Request, now time.Time) (start, end time.Time, err error) {
	rawStartTime := clientRequest.FormValue("starttime")
	switch {
	case rawStartTime == "":
		start = now.Add(-1 * time.Minute)
	case rawStartTime[0] == '-' || rawStartTime[0] == '+':
		dur, parseErr := time.ParseDuration(rawStartTime)
		if parseErr != nil {
			// Unparsable offsets fall back to the last minute
			start = now.Add(-1 * time.Minute)
			break
		}
		if dur > 0 {
			err = errFutureStart
			return
		}
		start = now.Add(dur)
	default:
		start, err = time.Parse(time.RFC3339Nano, rawStartTime)
		if err != nil {
			return
		}
	}

	rawEndTime := clientRequest.FormValue("endtime")
	if rawEndTime == "now" || rawEndTime == "" {
		end = now
	} else {
		end, err = time.Parse(time.RFC3339Nano, rawEndTime)
	}
	return
}

// Handles metric search requests based on time for data
func handleData(baseCtx context.Context, search DataSearcher, serverResponder http.ResponseWriter, clientRequest *http.Request) {
	reqNamespace := requestNamespace(clientRequest, global.DataPath)
	reqName := clientRequest.FormValue("name")

	reqStartTime, reqEndTime, err := requestWindow(clientRequest, time.Now())
	if err != nil {
		serverResponder.WriteHeader(http.StatusBadRequest)
		return
	}

	rawResults := search(reqName, reqNamespace, reqStartTime, reqEndTime)

	var results []metrics.JMetric
	for _, rawResult := range rawResults {
		results = append(results, rawResult.Convert())
	}

	if len(results) == 0 {
		jResp(baseCtx, serverResponder, Jerror{Msg: "Search returned no results"})
	} else {
		jResp(baseCtx, serverResponder, results)
	}
}

// Handles sum requests for one metric name over a window
func handleTotal(baseCtx context.Context, total TotalSearcher, serverResponder http.ResponseWriter, clientRequest *http.Request) {
	reqNamespace := requestNamespace(clientRequest, global.TotalPath)
	reqName := clientRequest.FormValue("name")
	if reqName == "" {
		serverResponder.WriteHeader(http.StatusBadRequest)
		return
	}

	reqStartTime, reqEndTime, err := requestWindow(clientRequest, time.Now())
	if err != nil {
		serverResponder.WriteHeader(http.StatusBadRequest)
		return
	}

	sum, err := total(reqName, reqNamespace, reqStartTime, reqEndTime)
	if err != nil {
		jResp(baseCtx, serverResponder, Jerror{Msg: err.Error()})
		return
	}
	jResp(baseCtx, serverResponder, JTotal{
		Name:      reqName,
		Namespace: strings.Join(reqNamespace, "/"),
		Start:     reqStartTime.Format(time.RFC3339Nano),
		End:       reqEndTime.Format(time.RFC3339Nano),
		Total:     sum,
	})
}
