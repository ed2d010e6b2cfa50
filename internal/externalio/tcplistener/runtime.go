package tcplistener

import (
	"aisfeed/internal/global"
	"aisfeed/internal/logctx"
	"aisfeed/internal/network"
	"aisfeed/internal/setting"
	"context"
	"fmt"
	"net"
	"time"
)

// Listens on all interfaces at the configured port
func (mod *OutModule) Start(ctx context.Context) (err error) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if mod.running {
		err = fmt.Errorf("%w: TCP server output already started on %s", setting.ErrStartup, mod.server.Addr())
		return
	}

	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoServer, mod.id)

	server := network.NewServer(time.Duration(mod.timeout) * time.Second)
	err = server.Start(ctx, net.JoinHostPort("", mod.port))
	if err != nil {
		err = fmt.Errorf("%w: TCP server output - %w", setting.ErrStartup, err)
		return
	}
	mod.server = server
	mod.running = true

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"open at %s, %s\n", server.Addr(), mod.lines.Describe())
	return
}

// Bound address, nil before Start
func (mod *OutModule) Addr() (addr net.Addr) {
	mod.mu.Lock()
	defer mod.mu.Unlock()
	if mod.server != nil {
		addr = mod.server.Addr()
	}
	return
}

// Closes listener and clients; returns once accept and reader goroutines have exited
func (mod *OutModule) Stop(ctx context.Context) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if !mod.running {
		return
	}
	addr := mod.server.Addr()
	mod.server.Stop()
	mod.running = false

	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoServer, mod.id)
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "closed %s\n", addr)
}
