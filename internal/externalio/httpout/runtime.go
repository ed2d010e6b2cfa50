package httpout

import (
	"aisfeed/internal/global"
	"aisfeed/internal/logctx"
	"aisfeed/internal/output"
	"aisfeed/internal/setting"
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/pbnjay/memory"
)

// Starts the background flush loop
func (mod *OutModule) Start(ctx context.Context) (err error) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if mod.running {
		return
	}

	if mod.gzip && !mod.zip.Installed() {
		err = fmt.Errorf("%w: HTTP output - gzip requested but compression is not available", setting.ErrStartup)
		return
	}
	// Test mode never builds a transport; envelopes are only logged
	if mod.poster == nil && mod.url != "" && !mod.test {
		mod.poster = NewHTTPPoster(mod.url, mod.userpwd, time.Duration(mod.timeout)*time.Second)
	}
	if mod.poster == nil && !mod.test {
		err = fmt.Errorf("%w: HTTP output - no transport available (set URL or TEST)", setting.ErrStartup)
		return
	}

	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoHTTP, mod.id)
	mod.refreshLimit()

	loopCtx, cancel := context.WithCancel(ctx)
	mod.cancel = cancel
	mod.done = make(chan struct{})
	mod.running = true

	go mod.run(loopCtx, ctx, mod.done)

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"start thread (%s), %s, protocol: %s, interval: %ds\n",
		mod.url, output.DescribeFilter(mod.filter), mod.protocol, mod.interval)
	return
}

// Cancels the loop and waits for its final flush
func (mod *OutModule) Stop(ctx context.Context) {
	mod.mu.Lock()
	defer mod.mu.Unlock()

	if !mod.running {
		return
	}
	mod.cancel()
	<-mod.done
	mod.running = false

	ctx = logctx.AppendCtxTag(ctx, global.NSOut, global.NSoHTTP, mod.id)
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "stop thread (%s)\n", mod.url)
}

// Ticks once per tick; flushes every interval ticks and once more on cancellation
func (mod *OutModule) run(loopCtx context.Context, logCtx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		if fatalError := recover(); fatalError != nil {
			stack := debug.Stack()
			logctx.LogEvent(logCtx, global.VerbosityStandard, global.ErrorLog,
				"panic in HTTP flush loop: %v\n%s", fatalError, stack)
		}
	}()

	ticker := time.NewTicker(mod.tick)
	defer ticker.Stop()

	var ticks int
	for {
		select {
		case <-loopCtx.Done():
			if mod.url != "" {
				mod.flush(logCtx)
			}
			return
		case <-ticker.C:
			ticks++
			if ticks < mod.interval {
				continue
			}
			ticks = 0
			if mod.url != "" {
				mod.flush(logCtx)
			}
			mod.refreshLimit()
		}
	}
}

// Allows pending records up to an eighth of free memory
func (mod *OutModule) refreshLimit() {
	mod.queue.SetLimit(memory.FreeMemory() / 8)
}

// Drains the queue and posts one envelope. Failures are logged, the batch is not retried.
func (mod *OutModule) flush(ctx context.Context) {
	records := mod.queue.Drain()
	if len(records) == 0 {
		return
	}
	mod.Metrics.Flushes.Add(1)

	env := mod.buildEnvelope(records, mod.now())
	body := []byte(env.body)

	compressed := mod.gzip && !env.multipart
	if compressed {
		zipped, err := mod.zip.Compress(body)
		if err != nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"compression failed (%s), sending uncompressed: %v\n", mod.url, err)
			compressed = false
		} else {
			body = zipped
		}
	}

	if mod.poster == nil {
		logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog,
			"test mode, %d records not sent: %s\n", len(records), env.body)
		return
	}

	// Background context; the final flush runs after cancellation
	postCtx, cancel := context.WithTimeout(context.Background(), time.Duration(mod.timeout)*time.Second)
	defer cancel()

	status, response, err := mod.poster.Post(postCtx, body, compressed, env.multipart, env.field)
	if err != nil {
		mod.Metrics.FailedPosts.Add(1)
		mod.Metrics.Failures.Add(uint64(len(records)))
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"error - %v (%s)\n", err, mod.url)
		return
	}

	mod.Metrics.Records.Add(uint64(len(records)))
	mod.Metrics.Bytes.Add(uint64(len(body)))

	if status != http.StatusOK {
		mod.Metrics.FailedPosts.Add(1)
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"server %s returned %d\n", mod.url, status)
	}
	if mod.response {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
			"server %s response - %s\n", mod.url, response)
	}
}
