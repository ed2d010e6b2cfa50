package tcplistener

import (
	"aisfeed/internal/global"
	"aisfeed/internal/logctx"
	"aisfeed/pkg/ais"
	"context"
)

func (mod *OutModule) ReceiveMessages(ctx context.Context, msgs []ais.Message, tag ais.Tag) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if !mod.running {
		return
	}
	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoServer, mod.id)
	filtered := mod.lines.Messages(msgs, tag, func(line string) {
		mod.broadcast(ctx, line)
	})
	mod.Metrics.Filtered.Add(uint64(filtered))
}

func (mod *OutModule) ReceiveFixes(ctx context.Context, fixes []ais.Fix, tag ais.Tag) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if !mod.running {
		return
	}
	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoServer, mod.id)
	filtered := mod.lines.Fixes(fixes, tag, func(line string) {
		mod.broadcast(ctx, line)
	})
	mod.Metrics.Filtered.Add(uint64(filtered))
}

// Queues the line for every client; never waits on a slow client
func (mod *OutModule) broadcast(ctx context.Context, line string) {
	delivered, dropped := mod.server.SendAll(ctx, []byte(line))
	if delivered > 0 {
		mod.Metrics.Records.Add(1)
		mod.Metrics.Bytes.Add(uint64(delivered * len(line)))
	}
	if dropped > 0 {
		mod.Metrics.Failures.Add(uint64(dropped))
	}
}
