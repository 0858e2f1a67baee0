// pattern: Functional Core

package logging

import (
	"encoding/json"
	"strings"
	"time"
)

// LogEntry is one structured log line as written by zap's JSON encoder.
type LogEntry struct {
	Timestamp time.Time
	Level     string // DEBUG, INFO, WARN, ERROR
	Scope     string // e.g. "build.space"
	Message   string
	Fields    map[string]any
}

// MatchesScope returns true if the entry's scope starts with the given prefix.
// An empty prefix matches all entries.
func (e LogEntry) MatchesScope(prefix string) bool {
	if prefix == "" {
		return true
	}
	return strings.HasPrefix(e.Scope, prefix)
}

// ParseLevel normalizes a log level string to uppercase.
// Returns "INFO" for unknown levels.
func ParseLevel(level string) string {
	switch strings.ToLower(level) {
	case "debug":
		return "DEBUG"
	case "info":
		return "INFO"
	case "warn", "warning":
		return "WARN"
	case "error":
		return "ERROR"
	default:
		return "INFO"
	}
}

// parseEntry decodes one zap JSON line. The well-known keys fill the entry's
// fields and everything else lands in Fields.
func parseEntry(line []byte) (LogEntry, error) {
	var raw map[string]any
	if err := json.Unmarshal(line, &raw); err != nil {
		return LogEntry{}, err
	}

	entry := LogEntry{Level: "INFO", Fields: make(map[string]any, len(raw))}
	for k, v := range raw {
		switch k {
		case "msg":
			entry.Message, _ = v.(string)
		case "level":
			if s, ok := v.(string); ok {
				entry.Level = ParseLevel(s)
			}
		case "logger":
			entry.Scope, _ = v.(string)
		case "ts":
			if f, ok := v.(float64); ok {
				entry.Timestamp = time.UnixMilli(int64(f * 1000))
			}
		case "caller", "stacktrace":
		default:
			entry.Fields[k] = v
		}
	}
	return entry, nil
}
