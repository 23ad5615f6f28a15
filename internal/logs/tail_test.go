package logs_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"qbank/internal/logs"
)

const sampleLog = `{"ts":"2026-01-02T10:00:00Z","level":"info","msg":"opened","component":"library","correlation_id":"aaaa1111"}
not json
{"ts":"2026-01-02T10:00:01Z","level":"warn","msg":"saved filter unreadable","component":"filterstate","event_type":"filterstate_load_failed","correlation_id":"aaaa1111","error_hint":"reset"}
{"ts":"2026-01-02T10:00:02Z","level":"debug","msg":"cache loaded","component":"library","correlation_id":"bbbb2222","count":3}
{"ts":"2026-01-02T10:00:03Z","level":"error","msg":"commit failed","component":"store","correlation_id":"bbbb2222"}
`

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qbank.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func messages(entries []logs.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}

func TestParseEntry(t *testing.T) {
	entry, ok := logs.ParseEntry(`{"ts":"2026-01-02T10:00:03Z","level":"warn","msg":"m","component":"store","event_type":"x","record_id":"r1","source":"a.go:1"}`)
	if !ok {
		t.Fatal("expected entry to parse")
	}
	if entry.Level != slog.LevelWarn || entry.Component != "store" || entry.EventType != "x" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.Time.IsZero() {
		t.Fatal("expected timestamp")
	}
	if entry.Attrs["record_id"] != "r1" {
		t.Fatalf("attrs = %v", entry.Attrs)
	}
	if _, ok := entry.Attrs["source"]; ok {
		t.Fatal("source should be dropped")
	}
	if _, ok := logs.ParseEntry("plain text"); ok {
		t.Fatal("plain text parsed as entry")
	}
}

func TestTailLastEntries(t *testing.T) {
	path := writeLog(t, sampleLog)

	entries, offset, err := logs.Tail(path, 2, logs.Filter{})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	got := messages(entries)
	if len(got) != 2 || got[0] != "saved filter unreadable" || got[1] != "commit failed" {
		t.Fatalf("messages = %v", got)
	}
	if offset != int64(len(sampleLog)) {
		t.Fatalf("offset = %d, want %d", offset, len(sampleLog))
	}
}

func TestTailFilters(t *testing.T) {
	path := writeLog(t, sampleLog)

	entries, _, err := logs.Tail(path, 10, logs.Filter{MinLevel: slog.LevelDebug, Component: "library"})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if got := messages(entries); len(got) != 2 || got[0] != "opened" || got[1] != "cache loaded" {
		t.Fatalf("component filter = %v", got)
	}

	entries, _, err = logs.Tail(path, 10, logs.Filter{MinLevel: slog.LevelDebug, CorrelationID: "bbbb"})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if got := messages(entries); len(got) != 2 || got[1] != "commit failed" {
		t.Fatalf("correlation filter = %v", got)
	}

	entries, _, err = logs.Tail(path, 10, logs.Filter{MinLevel: slog.LevelWarn})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("level filter = %v", messages(entries))
	}
}

func TestTailMissingFile(t *testing.T) {
	entries, offset, err := logs.Tail(filepath.Join(t.TempDir(), "absent.log"), 5, logs.Filter{})
	if err != nil || len(entries) != 0 || offset != 0 {
		t.Fatalf("Tail missing = %v, %d, %v", entries, offset, err)
	}
}

func TestFollowDeliversAppendedEntries(t *testing.T) {
	path := writeLog(t, sampleLog)
	_, offset, err := logs.Tail(path, 0, logs.Filter{})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		mu  sync.Mutex
		got []string
	)
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, offset, 10*time.Millisecond, logs.Filter{}, func(e logs.Entry) {
			mu.Lock()
			got = append(got, e.Message)
			mu.Unlock()
			cancel()
		})
	}()

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if _, err := file.WriteString(`{"ts":"2026-01-02T10:00:04Z","level":"info","msg":"later"}` + "\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	file.Close()

	if err := <-done; err != context.Canceled {
		t.Fatalf("Follow returned %v, want context.Canceled", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "later" {
		t.Fatalf("followed = %v", got)
	}
}
