package log

import (
	"testing"
)

type testLogger struct {
	entries []string
}

func (l *testLogger) Debug(_ map[string]any, msg string) { l.entries = append(l.entries, "DEBUG:"+msg) }
func (l *testLogger) Info(_ map[string]any, msg string)  { l.entries = append(l.entries, "INFO:"+msg) }
func (l *testLogger) Warn(_ map[string]any, msg string)  { l.entries = append(l.entries, "WARN:"+msg) }
func (l *testLogger) Error(_ map[string]any, msg string) { l.entries = append(l.entries, "ERROR:"+msg) }
func (l *testLogger) Fatal(_ map[string]any, msg string) {}

func TestSetLoggerAndGlobalLogging(t *testing.T) {
	orig := GetLogger()
	defer func() {
		SetLogger(orig) // Restore original logger after test
	}()
	tlog := &testLogger{}
	SetLogger(tlog)

	Debug(nil, "debug msg")
	Info(nil, "info msg")
	Warn(nil, "warn msg")
	Error(nil, "error msg")

	expected := []string{
		"DEBUG:debug msg",
		"INFO:info msg",
		"WARN:warn msg",
		"ERROR:error msg",
	}

	if len(tlog.entries) != len(expected) {
		t.Fatalf("expected %d log entries, got %d", len(expected), len(tlog.entries))
	}
	for i, msg := range expected {
		if tlog.entries[i] != msg {
			t.Errorf("expected log[%d] = %q, got %q", i, msg, tlog.entries[i])
		}
	}
}

func TestConfigure(t *testing.T) {
	orig := GetLogger()
	defer func() {
		SetLogger(orig) // Restore original logger after test
	}()

	if err := Configure("dev", "debug"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Configure("prod", "info"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Configure("prod", "not-a-level"); err == nil {
		t.Error("expected error for invalid level, got nil")
	}
}

func TestNoopLogger(t *testing.T) {
	n := NewNoopLogger()
	// must not panic or emit anything
	n.Debug(nil, "debug")
	n.Info(map[string]any{"k": "v"}, "info")
	n.Warn(nil, "warn")
	n.Error(nil, "error")
	n.Fatal(nil, "fatal")
}

func TestActualZapLogger(t *testing.T) {
	// exercise the real zap-backed logger with and without fields
	Debug(map[string]any{
		"key1": "value1",
		"key2": 42,
		"key3": true,
	}, "test debug")
	Info(nil, "test info")
	Warn(nil, "test warn")
	Error(nil, "test error")
}
