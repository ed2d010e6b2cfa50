package tcpclient

import (
	"aisfeed/internal/global"
	"aisfeed/internal/logctx"
	"aisfeed/internal/network"
	"aisfeed/internal/setting"
	"context"
	"fmt"
	"net"
)

// Connects once. A persistent feed that cannot connect starts anyway and connects on a later send.
func (mod *OutModule) Start(ctx context.Context) (err error) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if mod.running {
		err = fmt.Errorf("%w: TCP output already started (%s:%s)", setting.ErrStartup, mod.host, mod.port)
		return
	}

	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoTCP, mod.id)

	client := network.NewTCPClient(net.JoinHostPort(mod.host, mod.port), mod.persistent)
	client.SetWriteTimeout(mod.writeTimeout)
	status := "connected"

	err = client.Connect(ctx)
	if err != nil {
		if !mod.persistent {
			err = fmt.Errorf("%w: TCP output - %w", setting.ErrStartup, err)
			return
		}
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"initial connect failed, will retry on send: %v\n", err)
		status = "pending"
		err = nil
	}

	mod.client = client
	mod.active.Store(client)
	mod.running = true
	mod.stopping.Store(false)
	mod.terminated.Store(false)

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"open socket for host: %s, port: %s, %s, persist: %v, status: %s\n",
		mod.host, mod.port, mod.lines.Describe(), mod.persistent, status)
	return
}

// Closes the connection first so a send blocked on a slow peer returns
func (mod *OutModule) Stop(ctx context.Context) {
	if client := mod.active.Swap(nil); client != nil {
		mod.stopping.Store(true)
		client.Close()
	}

	mod.mu.Lock()
	defer mod.mu.Unlock()

	if !mod.running {
		return
	}
	mod.running = false

	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoTCP, mod.id)
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"close socket (%s:%s)\n", mod.host, mod.port)
}
