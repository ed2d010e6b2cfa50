package tcpclient

import (
	"aisfeed/internal/global"
	"aisfeed/internal/logctx"
	"aisfeed/pkg/ais"
	"context"
	"fmt"
	"time"
)

func (mod *OutModule) ReceiveMessages(ctx context.Context, msgs []ais.Message, tag ais.Tag) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if !mod.running {
		return
	}
	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoTCP, mod.id)
	filtered := mod.lines.Messages(msgs, tag, func(line string) {
		mod.send(ctx, line)
	})
	mod.Metrics.Filtered.Add(uint64(filtered))
}

func (mod *OutModule) ReceiveFixes(ctx context.Context, fixes []ais.Fix, tag ais.Tag) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if !mod.running {
		return
	}
	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoTCP, mod.id)
	filtered := mod.lines.Fixes(fixes, tag, func(line string) {
		mod.send(ctx, line)
	})
	mod.Metrics.Filtered.Add(uint64(filtered))
}

// Non-persistent feeds escalate their first failure; persistent ones leave recovery to the client
func (mod *OutModule) send(ctx context.Context, line string) {
	err := mod.client.Send(ctx, []byte(line))
	if err == nil {
		mod.Metrics.Records.Add(1)
		mod.Metrics.Bytes.Add(uint64(len(line)))
		return
	}
	mod.Metrics.Failures.Add(1)

	// Failures caused by Stop closing the connection
	if mod.stopping.Load() {
		return
	}

	if mod.persistent {
		logctx.LogEventLimited(ctx, "tcp-send-"+mod.id, time.Minute, global.VerbosityStandard, global.WarnLog,
			"%v\n", err)
		return
	}

	if !mod.terminated.CompareAndSwap(false, true) {
		return
	}
	logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
		"%v. Requesting termination.\n", err)
	if mod.stop != nil {
		mod.stop.RequestStop(fmt.Sprintf("TCP output %s:%s: connection lost", mod.host, mod.port))
	}
}
