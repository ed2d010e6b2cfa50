package logctx

import (
	"aisfeed/internal/global"
	"strings"
	"time"
)

// Fixed width RFC3339 with all nine fractional digits
const timestampLayout string = "2006-01-02T15:04:05.000000000Z07:00"

var severityColors = map[string]string{
	global.ErrorLog: "\x1b[31m",
	global.WarnLog:  "\x1b[33m",
	global.InfoLog:  "\x1b[36m",
}

// Stringify full event
func (event Event) Format() (text string) {
	text = event.format(false)
	return
}

func (event Event) format(color bool) (text string) {
	// Only print parts that are present
	var parts []string
	if !event.Timestamp.IsZero() {
		parts = append(parts, "["+padTimestamp(event.Timestamp)+"]")
	}

	if len(event.Tags) > 0 {
		parts = append(parts, "["+strings.Join(event.Tags, "/")+"]")
	}

	if event.Severity != "" {
		severity := "[" + event.Severity + "]"
		if code, ok := severityColors[event.Severity]; ok && color {
			severity = code + severity + "\x1b[0m"
		}
		parts = append(parts, severity)
	}

	if event.Message != "" {
		parts = append(parts, event.Message)
	}

	text = strings.Join(parts, " ")
	// No newline, message creator determines newlines
	return
}

// Ensures fixed length strings for timestamps
func padTimestamp(timestamp time.Time) (formatted string) {
	formatted = timestamp.Format(timestampLayout)
	return
}
