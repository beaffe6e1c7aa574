package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return &Logger{Logger: zap.New(core), serviceName: "test-service"}, logs
}

func TestNewBuildsDevelopmentLoggerByDefault(t *testing.T) {
	l, err := New("screening-engine", "development", false)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if l.serviceName != "screening-engine" {
		t.Fatalf("serviceName = %q, want %q", l.serviceName, "screening-engine")
	}
	if !l.Core().Enabled(zap.InfoLevel) {
		t.Fatal("expected info level enabled by default")
	}
	if l.Core().Enabled(zap.DebugLevel) {
		t.Fatal("debug level should not be enabled without debug=true")
	}
}

func TestNewWithDebugEnablesDebugLevel(t *testing.T) {
	l, err := New("screening-engine", "development", true)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if !l.Core().Enabled(zap.DebugLevel) {
		t.Fatal("expected debug level enabled when debug=true")
	}
}

func TestNamedPreservesServiceName(t *testing.T) {
	l, _ := newObserved()
	named := l.Named("search")
	if named.serviceName != l.serviceName {
		t.Fatalf("Named() dropped serviceName: got %q, want %q", named.serviceName, l.serviceName)
	}
}

func TestWithContextAttachesOnlyPresentKeys(t *testing.T) {
	l, logs := newObserved()

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	withCtx := l.WithContext(ctx)
	withCtx.Info("hello")

	entries := logs.TakeAll()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" {
		t.Fatalf("request_id = %v, want %q", fields["request_id"], "req-1")
	}
	if _, ok := fields["session_id"]; ok {
		t.Fatal("session_id should be absent when not set on the context")
	}
}

func TestWithContextIgnoresEmptyStringValues(t *testing.T) {
	l, logs := newObserved()

	ctx := context.WithValue(context.Background(), RequestIDKey, "")
	l.WithContext(ctx).Info("hello")

	fields := logs.TakeAll()[0].ContextMap()
	if _, ok := fields["request_id"]; ok {
		t.Fatal("empty request_id should not be attached")
	}
}

func TestSearchCompletedLogsExpectedFields(t *testing.T) {
	l, logs := newObserved()
	l.SearchCompleted("sess-1", 42, 3, 12)

	entries := logs.TakeAll()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["session_id"] != "sess-1" {
		t.Fatalf("session_id = %v", fields["session_id"])
	}
	if fields["candidate_count"] != int64(42) {
		t.Fatalf("candidate_count = %v", fields["candidate_count"])
	}
	if fields["result_count"] != int64(3) {
		t.Fatalf("result_count = %v", fields["result_count"])
	}
}

func TestBatchItemFailedLogsAtWarnWithError(t *testing.T) {
	l, logs := newObserved()
	l.BatchItemFailed("batch-1", "req-9", errBoom)

	entries := logs.TakeAll()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Level != zap.WarnLevel {
		t.Fatalf("level = %v, want warn", entries[0].Level)
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-9" {
		t.Fatalf("request_id = %v", fields["request_id"])
	}
}

var errBoom = errTest("boom")

type errTest string

func (e errTest) Error() string { return string(e) }
