package logctx

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Log Event Structure
type Event struct {
	Timestamp time.Time
	Severity  string
	Tags      []string
	Message   string
}

// Logger Struct
type Logger struct {
	ID         string
	CreatedAt  time.Time
	queue      []Event    // event buffer
	mutex      sync.Mutex // protects buffer, level and limiters
	cond       *sync.Cond // condition to signal new events
	Done       <-chan struct{}
	PrintLevel int                      // Level at which the message should be recorded
	limiters   map[string]*rate.Limiter // per-key pacing for LogEventLimited
	wg         *sync.WaitGroup          // Holds main execution threads until log watchers are done handling events
}
