package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
)

func TestShouldMirror(t *testing.T) {
	tests := []struct {
		name  string
		level logging.Level
		msg   string
		want  bool
	}{
		{name: "debug", level: logging.LevelDebug, msg: "bonus allocated", want: false},
		{name: "quiet info", level: logging.LevelInfo, msg: "skip gameweek job: no current gameweek", want: false},
		{name: "job finished", level: logging.LevelInfo, msg: "gameweek job finished", want: true},
		{name: "quiet warn", level: logging.LevelWarn, msg: "scheduled run skipped", want: false},
		{name: "error", level: logging.LevelError, msg: "build leaderboard failed", want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := shouldMirror(tc.level, tc.msg); got != tc.want {
				t.Fatalf("shouldMirror(%s, %q) = %v, want %v", tc.level, tc.msg, got, tc.want)
			}
		})
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{"league_id", "demo-league", 7, uint8(3), "payload"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "league_id" || attrs[0].Value.AsString() != "demo-league" {
		t.Fatalf("unexpected league_id attribute: %v", attrs[0])
	}
	if attrs[1].Key != "arg_1" || attrs[1].Value.AsInt64() != 3 {
		t.Fatalf("unexpected positional attribute: %v", attrs[1])
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute: %v", attrs[2])
	}
}

type squadKey string

func TestLogValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		kind  otellog.Kind
	}{
		{name: "named string type", value: squadKey("s1"), kind: otellog.KindString},
		{name: "int", value: 12, kind: otellog.KindInt64},
		{name: "max uint64", value: ^uint64(0), kind: otellog.KindString},
		{name: "float", value: float32(1.5), kind: otellog.KindFloat64},
		{name: "bool", value: true, kind: otellog.KindBool},
		{name: "bytes", value: []byte("ok"), kind: otellog.KindBytes},
		{name: "error", value: errors.New("boom"), kind: otellog.KindString},
		{name: "duration", value: 3 * time.Second, kind: otellog.KindString},
		{name: "ints", value: []int{1, 2}, kind: otellog.KindSlice},
		{name: "non-string map keys", value: map[int]int{1: 2}, kind: otellog.KindString},
		{name: "nil", value: nil, kind: otellog.KindEmpty},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := logValue(tc.value, 0).Kind(); got != tc.kind {
				t.Fatalf("logValue(%v) kind = %s, want %s", tc.value, got, tc.kind)
			}
		})
	}
}

func TestLogValue_MapSortedAndDepthLimited(t *testing.T) {
	v := logValue(map[string]any{
		"goals_scored": 2,
		"clean_sheet":  true,
		"nested":       map[string]any{"deeper": map[string]any{"deepest": 1}},
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 3 || items[0].Key != "clean_sheet" || items[2].Key != "nested" {
		t.Fatalf("unexpected map items: %v", items)
	}
	deeper := items[2].Value.AsMap()[0].Value
	if deeper.Kind() != otellog.KindMap {
		t.Fatalf("expected second level map, got %s", deeper.Kind())
	}
	if got := deeper.AsMap()[0].Value.Kind(); got != otellog.KindString {
		t.Fatalf("expected depth-limited value to be stringified, got %s", got)
	}
}

func TestNewLogRecord(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	record := newLogRecord(now, logging.LevelWarn, "gameweek finalized with errors", []any{"gameweek", 3})

	if record.Severity() != otellog.SeverityWarn || record.SeverityText() != "WARN" {
		t.Fatalf("unexpected severity: %v %q", record.Severity(), record.SeverityText())
	}
	if !record.Timestamp().Equal(now) || record.EventName() != "gameweek finalized with errors" {
		t.Fatalf("unexpected record: %v %q", record.Timestamp(), record.EventName())
	}
	if record.AttributesLen() != 1 {
		t.Fatalf("expected one attribute, got %d", record.AttributesLen())
	}
}
