package httpout

import (
	"aisfeed/internal/global"
	"aisfeed/internal/logctx"
	"aisfeed/pkg/ais"
	"context"
)

// Serializes approved messages into the pending queue. No network I/O.
func (mod *OutModule) ReceiveMessages(ctx context.Context, msgs []ais.Message, tag ais.Tag) {
	if tag.Group != 0 && tag.Group&mod.groups == 0 {
		mod.Metrics.Filtered.Add(uint64(len(msgs)))
		return
	}

	records := make([]string, 0, len(msgs))
	for i := range msgs {
		if !mod.filter.Include(&msgs[i]) {
			mod.Metrics.Filtered.Add(1)
			continue
		}
		records = append(records, mod.builder.Stringify(msgs[i], tag))
	}
	mod.enqueue(ctx, records)
}

func (mod *OutModule) ReceiveFixes(ctx context.Context, fixes []ais.Fix, tag ais.Tag) {
	if !mod.filter.IncludeFix() || (tag.Group != 0 && tag.Group&mod.groups == 0) {
		mod.Metrics.Filtered.Add(uint64(len(fixes)))
		return
	}

	records := make([]string, 0, len(fixes))
	for _, fix := range fixes {
		records = append(records, fix.JSON())
	}
	mod.enqueue(ctx, records)
}

func (mod *OutModule) enqueue(ctx context.Context, records []string) {
	if len(records) == 0 {
		return
	}

	_, refused := mod.queue.Enqueue(records...)
	if refused > 0 {
		mod.Metrics.Dropped.Add(uint64(refused))
		ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoHTTP, mod.id)
		logctx.LogEventLimited(ctx, "http-queue-full-"+mod.id, global.DefaultMetricInterval,
			global.VerbosityStandard, global.WarnLog,
			"pending queue for %s exceeds memory limit, dropped %d records\n", mod.url, refused)
	}
}
