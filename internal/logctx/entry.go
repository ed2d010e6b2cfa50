// Central logging system. Buffers messages and writes to configured outputs
package logctx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Hold main thread exit until logger is finished its work
func (logger *Logger) Wait() {
	logger.wg.Wait()
}

// Wake signals/broadcasts to any goroutines waiting on the condition variable
func (logger *Logger) Wake() {
	logger.mutex.Lock()
	defer logger.mutex.Unlock()
	logger.cond.Broadcast()
}

// Entry for logging events
func LogEvent(ctx context.Context, eventLevel int, severity string, message string, vars ...any) {
	logger := GetLogger(ctx)
	if logger == nil {
		return
	}
	logger.log(eventLevel, severity, GetTagList(ctx), render(message, vars))
}

// Same as LogEvent, but events sharing a key are let through at most once per interval.
// For failures that repeat on every record (unreachable destination, closed socket).
func LogEventLimited(ctx context.Context, key string, every time.Duration, eventLevel int, severity string, message string, vars ...any) {
	logger := GetLogger(ctx)
	if logger == nil {
		return
	}

	logger.mutex.Lock()
	limiter, ok := logger.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(every), 1)
		logger.limiters[key] = limiter
	}
	logger.mutex.Unlock()

	if !limiter.Allow() {
		return
	}
	logger.log(eventLevel, severity, GetTagList(ctx), render(message, vars))
}

func render(message string, vars []any) (text string) {
	// vars might be empty - check to omit formatting
	if len(vars) == 0 || !strings.Contains(message, "%") {
		text = message
		return
	}
	text = fmt.Sprintf(message, vars...)
	return
}
