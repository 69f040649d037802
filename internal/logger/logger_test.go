package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	log := NewWithWriter("info", "json", &buf)

	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")
	log.Info(ctx, "formatted message: %s %d", "test", 123)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (debug filtered): %s", len(lines), buf.String())
	}

	var last map[string]interface{}
	if err := json.Unmarshal(lines[3], &last); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if last["message"] != "formatted message: test 123" {
		t.Errorf("message = %v", last["message"])
	}
}

func TestInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("bogus", "json", &buf)

	log.Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written at default level: %s", buf.String())
	}
	log.Info(context.Background(), "shown")
	if buf.Len() == 0 {
		t.Error("info line not written at default level")
	}
}

func TestSessionField(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", "json", &buf).With("session")

	ctx := WithSession(context.Background(), "abc-123")
	log.Info(ctx, "hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["sessionId"] != "abc-123" {
		t.Errorf("sessionId = %v, want abc-123", entry["sessionId"])
	}
	if entry["component"] != "session" {
		t.Errorf("component = %v, want session", entry["component"])
	}
}
