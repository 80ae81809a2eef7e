package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := sonic.UnmarshalString(line, &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestLogger_WritesFieldsAndTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf}).With("service", "fantasy-points-worker")

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01},
		SpanID:     trace.SpanID{0x02},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	logger.DebugContext(ctx, "hidden")
	logger.InfoContext(ctx, "gameweek job finished", "gameweek", 3, "error", errors.New("league=l2: boom"), "dangling")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected one line below debug, got %d", len(lines))
	}
	entry := lines[0]
	if entry["msg"] != "gameweek job finished" || entry["level"] != "INFO" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["service"] != "fantasy-points-worker" {
		t.Fatalf("expected With field, got %v", entry["service"])
	}
	if entry["gameweek"] != float64(3) {
		t.Fatalf("unexpected gameweek field: %v", entry["gameweek"])
	}
	if entry["error"] != "league=l2: boom" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
	if _, ok := entry["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
	if entry["trace_id"] != spanCtx.TraceID().String() || entry["span_id"] != spanCtx.SpanID().String() {
		t.Fatalf("expected trace ids, got %v / %v", entry["trace_id"], entry["span_id"])
	}
}

func TestLogger_MirrorReceivesRecords(t *testing.T) {
	var (
		mu   sync.Mutex
		msgs []string
	)
	SetMirror(func(ctx context.Context, level Level, msg string, args ...any) {
		if ctx == nil {
			t.Errorf("mirror got nil context")
		}
		mu.Lock()
		defer mu.Unlock()
		msgs = append(msgs, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	var buf bytes.Buffer
	logger := New(Options{Level: LevelWarn, Output: &buf})
	logger.Info("below level")
	logger.Warn("scheduled run failed")
	logger.ErrorContext(context.Background(), "worker failed")

	mu.Lock()
	defer mu.Unlock()
	if strings.Join(msgs, ",") != "warn:scheduled run failed,error:worker failed" {
		t.Fatalf("unexpected mirrored records: %v", msgs)
	}
}

func TestLogger_ConsoleFormatAndNamed(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: ParseFormat("Console"), Output: &buf}).Named("scheduler")
	logger.Debug("cron: wake")

	out := buf.String()
	if !strings.Contains(out, "scheduler") || !strings.Contains(out, "cron: wake") {
		t.Fatalf("unexpected console output: %q", out)
	}
	if !logger.Enabled(LevelDebug) {
		t.Fatalf("expected debug enabled")
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON || ParseFormat("") != FormatJSON || ParseFormat("console") != FormatConsole {
		t.Fatalf("unexpected ParseFormat results")
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil || logger.Zap() == nil {
		t.Fatalf("expected usable fallbacks")
	}
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}
