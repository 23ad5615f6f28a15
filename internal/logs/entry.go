package logs

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"qbank/internal/logging"
)

// Entry is one decoded log line.
type Entry struct {
	Time          time.Time
	Level         slog.Level
	Message       string
	Component     string
	EventType     string
	CorrelationID string
	// Attrs holds every remaining key.
	Attrs map[string]any
}

// ParseEntry decodes a JSON log line. It reports false for blank or
// malformed lines.
func ParseEntry(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] != '{' {
		return Entry{}, false
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}

	take := func(key string) string {
		v, ok := raw[key]
		if !ok {
			return ""
		}
		delete(raw, key)
		s, _ := v.(string)
		return s
	}

	var entry Entry
	if ts := take("ts"); ts != "" {
		entry.Time, _ = time.Parse(time.RFC3339, ts)
	}
	if err := entry.Level.UnmarshalText([]byte(take("level"))); err != nil {
		entry.Level = slog.LevelInfo
	}
	entry.Message = take("msg")
	entry.Component = take(logging.FieldComponent)
	entry.EventType = take(logging.FieldEventType)
	entry.CorrelationID = take(logging.FieldCorrelationID)
	delete(raw, "source")
	entry.Attrs = raw
	return entry, true
}

// Filter selects entries. The zero value keeps every entry at info and
// above.
type Filter struct {
	MinLevel      slog.Level
	Component     string
	CorrelationID string
}

// Match reports whether e passes f.
func (f Filter) Match(e Entry) bool {
	if e.Level < f.MinLevel {
		return false
	}
	if f.Component != "" && !strings.EqualFold(e.Component, f.Component) {
		return false
	}
	if f.CorrelationID != "" && !strings.HasPrefix(e.CorrelationID, f.CorrelationID) {
		return false
	}
	return true
}
