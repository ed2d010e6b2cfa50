package beats

import (
	"aisfeed/internal/global"
	"aisfeed/internal/logctx"
	"aisfeed/internal/setting"
	"context"
	"fmt"
	"net"
	"time"

	"golang.org/x/time/rate"
)

// Opens the lumberjack session; an unreachable server fails startup
func (mod *OutModule) Start(ctx context.Context) (err error) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if mod.running {
		err = fmt.Errorf("%w: beats output already started (%s:%s)", setting.ErrStartup, mod.host, mod.port)
		return
	}
	if mod.host == "" {
		err = fmt.Errorf("%w: beats output - no HOST configured", setting.ErrStartup)
		return
	}

	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoBeats, mod.id)

	address := net.JoinHostPort(mod.host, mod.port)
	client, err := mod.dial(address, mod.compression, time.Duration(mod.timeout)*time.Second)
	if err != nil {
		err = fmt.Errorf("%w: beats output - failed connection to beats server %s: %w", setting.ErrStartup, address, err)
		return
	}
	mod.sink = client
	mod.redial = rate.NewLimiter(rate.Every(global.TCPReconnectInterval), 1)
	mod.running = true

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"connected to %s, compression: %d, %s\n", address, mod.compression, mod.lines.Describe())
	return
}

func (mod *OutModule) Stop(ctx context.Context) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if !mod.running {
		return
	}
	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoBeats, mod.id)

	if mod.sink != nil {
		err := mod.sink.Close()
		if err != nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
				"closing session: %v\n", err)
		}
		mod.sink = nil
	}
	mod.running = false

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"closed session (%s:%s)\n", mod.host, mod.port)
}

// Opens a new session after a failed batch, paced by the redial limiter
func (mod *OutModule) reconnect(ctx context.Context) (err error) {
	if !mod.redial.Allow() {
		err = fmt.Errorf("session to %s:%s down, next redial pending", mod.host, mod.port)
		return
	}

	address := net.JoinHostPort(mod.host, mod.port)
	client, err := mod.dial(address, mod.compression, time.Duration(mod.timeout)*time.Second)
	if err != nil {
		err = fmt.Errorf("redial %s: %w", address, err)
		return
	}
	mod.sink = client

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "reconnected to %s\n", address)
	return
}
