package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}

	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsEachLevel(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	infoHandler := slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugHandler := slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(newFanoutHandler(infoHandler, debugHandler))
	logger.Debug("debug only message")

	if infoBuf.Len() != 0 {
		t.Fatal("info handler should not receive debug messages")
	}
	if debugBuf.Len() == 0 {
		t.Fatal("debug handler should receive debug messages")
	}
	if !logger.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected fanout to be enabled when any handler is")
	}
}

func TestFanoutHandlerWithAttrsReachesAll(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h := newFanoutHandler(slog.NewJSONHandler(&buf1, nil), slog.NewJSONHandler(&buf2, nil))
	slog.New(h.WithAttrs([]slog.Attr{slog.String("key", "value")})).Info("test")

	for i, buf := range []*bytes.Buffer{&buf1, &buf2} {
		if !bytes.Contains(buf.Bytes(), []byte(`"key":"value"`)) {
			t.Fatalf("handler %d missing attribute: %s", i, buf.String())
		}
	}
}

func TestPrettyHandlerLayout(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, lvl, false))
	logger = NewComponentLogger(logger, "filterstate").With(String(FieldCorrelationID, "abc"))

	logger.Warn("failed to load saved filter",
		String(FieldEventType, "filterstate_load_failed"),
		String("path", "/tmp/filter state.json"),
		String(FieldErrorHint, "run qbank filter reset"))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected message line plus hint line, got %q", out)
	}
	if !strings.Contains(lines[0], "WARN  filterstate: failed to load saved filter") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[0], `path="/tmp/filter state.json"`) {
		t.Fatalf("expected quoted path in %q", lines[0])
	}
	if strings.Contains(out, "abc") || strings.Contains(out, "filterstate_load_failed") {
		t.Fatalf("console output should hide correlation id and event type: %q", out)
	}
	if lines[1] != "  hint: run qbank filter reset" {
		t.Fatalf("unexpected hint line %q", lines[1])
	}
}

func TestPrettyHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPrettyHandler(&buf, new(slog.LevelVar), false))
	logger.WithGroup("rule").Info("planned", slog.String("topic", "B.4"))

	if !strings.Contains(buf.String(), "rule.topic=B.4") {
		t.Fatalf("expected grouped key, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
