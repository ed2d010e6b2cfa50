package udp

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

// Resolves the destination and opens the socket
func (mod *OutModule) Start(ctx context.Context) (err error) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if mod.running {
		err = fmt.Errorf("%w: UDP output already started (%s)", setting.ErrStartup, mod.address)
		return
	}

	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoUDP, mod.id)

	resolved, err := net.ResolveUDPAddr("udp", net.JoinHostPort(mod.host, mod.port))
	if err != nil {
		err = fmt.Errorf("%w: UDP output - cannot resolve %s:%s: %w", setting.ErrStartup, mod.host, mod.port, err)
		return
	}

	conn, err := mod.dial(ctx, resolved.String(), mod.broadcast)
	if err != nil {
		err = fmt.Errorf("%w: UDP output - %w", setting.ErrStartup, err)
		return
	}

	mod.conn = conn
	mod.address = resolved.String()
	mod.lastReset = mod.now()
	mod.running = true
	mod.failed = false

	mod.maxPayload, err = network.MaxUDPPayload(resolved.IP)
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityProgress, global.WarnLog,
			"cannot determine path payload size for %s: %v\n", mod.address, err)
		mod.maxPayload = 0
		err = nil
	}

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"open socket for host: %s, port: %s, %s, broadcast: %v, reset: %d min\n",
		mod.host, mod.port, mod.lines.Describe(), mod.broadcast, mod.reset)
	return
}

// Closes the socket and forgets the destination
func (mod *OutModule) Stop(ctx context.Context) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if mod.conn != nil {
		mod.conn.Close()
		mod.conn = nil
	}
	if mod.running {
		ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoUDP, mod.id)
		logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "close socket (%s)\n", mod.address)
	}
	mod.address = ""
	mod.running = false
	mod.failed = false
}

// Recreates the socket once the reset interval has passed. Caller holds mu.
func (mod *OutModule) resetIfNeeded(ctx context.Context) {
	if mod.reset <= 0 {
		return
	}
	now := mod.now()
	if now.Sub(mod.lastReset) <= resetInterval(mod.reset) {
		return
	}

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"recreate socket (%s:%s)\n", mod.host, mod.port)

	mod.conn.Close()
	mod.lastReset = now
	mod.Metrics.Resets.Add(1)

	conn, err := mod.dial(ctx, mod.address, mod.broadcast)
	if err != nil {
		mod.conn = nil
		mod.failed = true
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"cannot recreate socket (%s): %v. Requesting termination.\n", mod.address, err)
		if mod.stop != nil {
			mod.stop.RequestStop(fmt.Sprintf("UDP output %s: socket recreation failed", mod.address))
		}
		return
	}
	mod.conn = conn
}

func resetInterval(minutes int) (interval time.Duration) {
	interval = time.Duration(minutes) * time.Minute
	return
}
