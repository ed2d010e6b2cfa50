// Fan-out of decoded records to every configured output
package daemon

import (
	"aisfeed/internal/externalio/beats"
	"aisfeed/internal/externalio/httpout"
	"aisfeed/internal/externalio/server"
	"aisfeed/internal/externalio/tcpclient"
	"aisfeed/internal/externalio/tcplistener"
	"aisfeed/internal/externalio/udp"
	"aisfeed/internal/global"
	"aisfeed/internal/logctx"
	"aisfeed/internal/metrics"
	"aisfeed/internal/output"
	"aisfeed/internal/setting"
	"aisfeed/pkg/ais"
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Create new daemon instance
func New(cfg Config) (new *Daemon) {
	if cfg.MetricCollectionInterval == 0 {
		cfg.MetricCollectionInterval = global.DefaultMetricInterval
	}
	if cfg.MetricMaxAge == 0 {
		cfg.MetricMaxAge = global.DefaultMetricRetention
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = global.OutputShutdownTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	new = &Daemon{
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
		outCtx:   context.WithoutCancel(ctx),
		Registry: metrics.New(),
	}
	return
}

// Builds an output of the given kind and applies options in order.
// Kinds: HTTP, UDP, TCP, SERVER, BEATS.
func (daemon *Daemon) AddOutput(kind string, options [][2]string) (out output.Output, err error) {
	switch strings.ToUpper(kind) {
	case "HTTP":
		out = httpout.New()
	case "UDP":
		out = udp.New(daemon)
	case "TCP":
		out = tcpclient.New(daemon)
	case "SERVER":
		out = tcplistener.New()
	case "BEATS":
		out = beats.New()
	default:
		err = fmt.Errorf("%w: unknown output kind %q", setting.ErrConfiguration, kind)
		return
	}

	for _, option := range options {
		_, err = out.Set(option[0], option[1])
		if err != nil {
			out = nil
			return
		}
	}

	daemon.mu.Lock()
	daemon.outputs = append(daemon.outputs, out)
	daemon.mu.Unlock()
	return
}

// Starts outputs in order. On failure the ones already started are stopped again.
func (daemon *Daemon) Start(globalCtx context.Context) (err error) {
	daemon.ctx = context.WithValue(daemon.ctx, global.LoggerKey, logctx.GetLogger(globalCtx))
	ctx := logctx.AppendCtxTag(daemon.ctx, global.NSDaemon)

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "Starting...\n")

	// Output lifetimes end with Stop, not with a stop request
	daemon.outCtx = context.WithoutCancel(daemon.ctx)

	daemon.mu.Lock()
	for daemon.started < len(daemon.outputs) {
		out := daemon.outputs[daemon.started]
		err = out.Start(daemon.outCtx)
		if err != nil {
			break
		}
		daemon.started++
	}
	started := daemon.outputs[:daemon.started]
	daemon.mu.Unlock()

	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"output startup failed, stopping %d started outputs: %v\n", len(started), err)
		daemon.Shutdown()
		return
	}

	daemon.gatherer = NewGatherer(daemon.cfg.MetricCollectionInterval, daemon.cfg.MetricMaxAge, daemon.Registry, daemon.running)
	daemon.wg.Add(1)
	go func() {
		defer daemon.wg.Done()
		daemon.gatherer.Run(daemon.ctx)
	}()

	if daemon.cfg.MetricQueryAddress != "" {
		err = daemon.startMetricServer()
		if err != nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog, "%v\n", err)
			daemon.Shutdown()
			return
		}
	}

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"Startup complete, %d outputs.\n", len(started))
	return
}

// Snapshot of the running outputs
func (daemon *Daemon) running() (outputs []output.Output) {
	daemon.mu.RLock()
	defer daemon.mu.RUnlock()
	outputs = append(outputs, daemon.outputs[:daemon.started]...)
	return
}

func (daemon *Daemon) ReceiveMessages(msgs []ais.Message, tag ais.Tag) {
	daemon.mu.RLock()
	defer daemon.mu.RUnlock()
	for _, out := range daemon.outputs[:daemon.started] {
		out.ReceiveMessages(daemon.outCtx, msgs, tag)
	}
}

func (daemon *Daemon) ReceiveFixes(fixes []ais.Fix, tag ais.Tag) {
	daemon.mu.RLock()
	defer daemon.mu.RUnlock()
	for _, out := range daemon.outputs[:daemon.started] {
		out.ReceiveFixes(daemon.outCtx, fixes, tag)
	}
}

// Ends the daemon context once; later requests are ignored
func (daemon *Daemon) RequestStop(reason string) {
	daemon.stopOnce.Do(func() {
		daemon.stopReason.Store(&reason)
		ctx := logctx.AppendCtxTag(daemon.ctx, global.NSDaemon)
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"stop requested: %s\n", reason)
		daemon.cancel()
	})
}

// Closed once a stop is requested or the daemon shuts down
func (daemon *Daemon) Done() (done <-chan struct{}) {
	done = daemon.ctx.Done()
	return
}

// Reason given by the first stop request, empty if none
func (daemon *Daemon) StopReason() (reason string) {
	if stored := daemon.stopReason.Load(); stored != nil {
		reason = *stored
	}
	return
}

// Blocking daemon waiter
func (daemon *Daemon) Run() {
	<-daemon.ctx.Done()
}

// Stops every started output concurrently, bounded by the shutdown timeout
func (daemon *Daemon) Shutdown() {
	ctx := logctx.AppendCtxTag(daemon.ctx, global.NSDaemon)
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"Daemon shutdown started...\n")

	if daemon.MetricServer != nil {
		err := daemon.MetricServer.Shutdown(daemon.outCtx)
		if err != nil && err != http.ErrServerClosed {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
				"metric HTTP server did not shutdown gracefully: %v\n", err)
		}
	}

	daemon.mu.Lock()
	outputs := daemon.outputs[:daemon.started]
	daemon.started = 0
	daemon.mu.Unlock()

	var group errgroup.Group
	for _, out := range outputs {
		out := out
		group.Go(func() (err error) {
			out.Stop(daemon.outCtx)
			return
		})
	}

	done := make(chan struct{})
	go func() {
		group.Wait()
		daemon.cancel()
		daemon.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
			"Daemon shutdown completed successfully\n")
	case <-time.After(daemon.cfg.ShutdownTimeout):
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"Timeout: outputs did not stop within %v seconds\n", daemon.cfg.ShutdownTimeout.Seconds())
		daemon.cancel()
	}
}

// Serves registry queries until Shutdown
func (daemon *Daemon) startMetricServer() (err error) {
	listener, err := net.Listen("tcp", daemon.cfg.MetricQueryAddress)
	if err != nil {
		err = fmt.Errorf("%w: metric query server: %w", setting.ErrStartup, err)
		return
	}
	daemon.metricAddr = listener.Addr()

	serverCtx := logctx.AppendCtxTag(daemon.outCtx, global.NSMetric, global.NSMetricSrv)
	daemon.MetricServer = server.SetupListener(serverCtx, daemon.Registry.Search, daemon.Registry.Total)
	daemon.wg.Add(1)
	go func() {
		defer daemon.wg.Done()
		server.Start(serverCtx, daemon.MetricServer, listener)
	}()
	return
}

// Bound metric query address, nil when the server is disabled
func (daemon *Daemon) MetricAddr() (addr net.Addr) {
	addr = daemon.metricAddr
	return
}
