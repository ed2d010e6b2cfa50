package udp

import (
	"aisfeed/internal/global"
	"aisfeed/internal/logctx"
	"aisfeed/pkg/ais"
	"context"
	"time"
)

func (mod *OutModule) ReceiveMessages(ctx context.Context, msgs []ais.Message, tag ais.Tag) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	ctx, ok := mod.ready(ctx)
	if !ok {
		return
	}
	filtered := mod.lines.Messages(msgs, tag, func(line string) {
		mod.send(ctx, line)
	})
	mod.Metrics.Filtered.Add(uint64(filtered))
}

func (mod *OutModule) ReceiveFixes(ctx context.Context, fixes []ais.Fix, tag ais.Tag) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	ctx, ok := mod.ready(ctx)
	if !ok {
		return
	}
	filtered := mod.lines.Fixes(fixes, tag, func(line string) {
		mod.send(ctx, line)
	})
	mod.Metrics.Filtered.Add(uint64(filtered))
}

// Tags ctx and applies the reset policy. Caller holds mu.
func (mod *OutModule) ready(ctx context.Context) (tagged context.Context, ok bool) {
	if !mod.running || mod.failed {
		return
	}
	tagged = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoUDP, mod.id)
	mod.resetIfNeeded(tagged)
	ok = !mod.failed
	return
}

// One datagram. Failures are logged and counted, never returned.
func (mod *OutModule) send(ctx context.Context, line string) {
	if mod.maxPayload > 0 && len(line) > mod.maxPayload {
		mod.Metrics.Oversize.Add(1)
		logctx.LogEventLimited(ctx, "udp-oversize-"+mod.id, time.Minute, global.VerbosityStandard, global.WarnLog,
			"datagram of %d bytes exceeds path payload %d to %s, may fragment\n", len(line), mod.maxPayload, mod.address)
	}

	_, err := mod.conn.Write([]byte(line))
	if err != nil {
		mod.Metrics.Failures.Add(1)
		logctx.LogEventLimited(ctx, "udp-send-"+mod.id, time.Minute, global.VerbosityStandard, global.WarnLog,
			"send to %s failed: %v\n", mod.address, err)
		return
	}
	mod.Metrics.Records.Add(1)
	mod.Metrics.Bytes.Add(uint64(len(line)))
}
