package beats

import (
	"aisfeed/internal/global"
	"aisfeed/internal/logctx"
	"aisfeed/pkg/ais"
	"context"
	"strings"
	"time"
)

func (mod *OutModule) ReceiveMessages(ctx context.Context, msgs []ais.Message, tag ais.Tag) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if !mod.running {
		return
	}
	if !mod.lines.Accepts(tag) {
		mod.Metrics.Filtered.Add(uint64(len(msgs)))
		return
	}

	events := make([]interface{}, 0, len(msgs))
	for i := range msgs {
		msg := &msgs[i]
		if !mod.lines.Filter.Include(msg) {
			mod.Metrics.Filtered.Add(1)
			continue
		}

		var text string
		if mod.lines.JSON {
			text = msg.NMEAJSON(tag)
		} else {
			text = strings.Join(msg.NMEA, "\n")
		}

		fields := mod.event(msg.RxTime, text)
		fields["ais"] = map[string]interface{}{
			"type":    msg.Type,
			"mmsi":    msg.MMSI,
			"channel": msg.Channel,
		}
		events = append(events, fields)
	}

	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoBeats, mod.id)
	mod.send(ctx, events)
}

func (mod *OutModule) ReceiveFixes(ctx context.Context, fixes []ais.Fix, tag ais.Tag) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if !mod.running {
		return
	}
	if !mod.lines.Accepts(tag) || !mod.lines.Filter.IncludeFix() {
		mod.Metrics.Filtered.Add(uint64(len(fixes)))
		return
	}

	events := make([]interface{}, 0, len(fixes))
	for _, fix := range fixes {
		var text string
		if mod.lines.JSON {
			text = fix.JSON()
		} else {
			text = fix.NMEA()
		}

		fields := mod.event(fix.Timestamp, text)
		fields["gps"] = map[string]interface{}{
			"lat": fix.Lat,
			"lon": fix.Lon,
		}
		events = append(events, fields)
	}

	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoBeats, mod.id)
	mod.send(ctx, events)
}

// Minimum event fields plus the agent identifying this program
func (mod *OutModule) event(timestamp time.Time, text string) (fields map[string]interface{}) {
	if timestamp.IsZero() {
		timestamp = mod.now()
	}
	fields = map[string]interface{}{
		"@timestamp": timestamp.UTC(),
		"message":    text,
		"agent": map[string]interface{}{
			"name":    global.ProgBaseName,
			"version": global.ProgVersion,
		},
	}
	return
}

// One batch per ingestion call. Failed batches are dropped and the session is redialed on a later call.
func (mod *OutModule) send(ctx context.Context, events []interface{}) {
	if len(events) == 0 {
		return
	}

	if mod.sink == nil {
		err := mod.reconnect(ctx)
		if err != nil {
			mod.Metrics.Failures.Add(uint64(len(events)))
			logctx.LogEventLimited(ctx, "beats-send-"+mod.id, time.Minute, global.VerbosityStandard, global.WarnLog,
				"dropped %d events: %v\n", len(events), err)
			return
		}
	}

	sent, err := mod.sink.Send(events)
	mod.Metrics.Records.Add(uint64(sent))
	if err != nil {
		mod.sink.Close()
		mod.sink = nil
		mod.Metrics.Failures.Add(uint64(len(events) - sent))
		logctx.LogEventLimited(ctx, "beats-send-"+mod.id, time.Minute, global.VerbosityStandard, global.WarnLog,
			"failed sending %d events to %s:%s: %v\n", len(events)-sent, mod.host, mod.port, err)
		return
	}

	for _, event := range events {
		fields := event.(map[string]interface{})
		mod.Metrics.Bytes.Add(uint64(len(fields["message"].(string))))
	}
}
