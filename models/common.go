package models

import (
	"strings"
	"time"
)

// LogQuery selects and orders log entries for display. Storage always keeps
// insertion order; NewestFirst and Limit are applied on the way out.
type LogQuery struct {
	OperatorID  string
	All         bool // ignore OperatorID and return every operator's entries
	NewestFirst bool
	Limit       int // 0 means no limit
}

// DefaultLogLimit matches the original client's "last 10" log view
const DefaultLogLimit = 10

// Apply orders and limits entries that are in insertion order
func (q LogQuery) Apply(entries []LogEntry) []LogEntry {
	out := make([]LogEntry, len(entries))
	copy(out, entries)

	if q.NewestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// FormatTimestamp renders a log timestamp as ISO-8601 in UTC
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimestamp reads a timestamp written by FormatTimestamp
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// ValidationErrors collects form validation messages
type ValidationErrors []string

// HasErrors returns true if there are validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Error joins the messages
func (ve ValidationErrors) Error() string {
	return strings.Join(ve, ", ")
}
