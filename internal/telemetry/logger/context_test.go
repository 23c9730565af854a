package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestWithLogger_FromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json", Output: &buf})

	ctx := WithLogger(context.Background(), l)

	retrieved := FromContext(ctx)
	if retrieved == nil {
		t.Fatal("FromContext returned nil")
	}

	retrieved.Info("test message")

	if buf.Len() == 0 {
		t.Error("Logger from context should produce output")
	}
}

func TestFromContext_Default(t *testing.T) {
	// Should return default logger when none is set
	if l := FromContext(context.Background()); l == nil {
		t.Error("FromContext should return default logger, got nil")
	}
}

func TestWithCallID(t *testing.T) {
	callID := "01J9ZC4Y2M4R8T4W9H2K7QZXVB"

	ctx := WithCallID(context.Background(), callID)

	if retrieved := CallIDFromContext(ctx); retrieved != callID {
		t.Errorf("CallIDFromContext() = %q, want %q", retrieved, callID)
	}
}

func TestCallIDFromContext_Empty(t *testing.T) {
	if retrieved := CallIDFromContext(context.Background()); retrieved != "" {
		t.Errorf("CallIDFromContext() = %q, want empty string", retrieved)
	}
}

func TestL_WithCallID(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json", Output: &buf})

	ctx := WithLogger(context.Background(), l)
	ctx = WithCallID(ctx, "01J9ZC4Y2M4R8T4W9H2K7QZXVB")

	// L() should enrich with the call ID
	L(ctx).Info("test message")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	callID, ok := logEntry["call_id"].(string)
	if !ok || callID != "01J9ZC4Y2M4R8T4W9H2K7QZXVB" {
		t.Errorf("Expected call_id in log, got %v", logEntry["call_id"])
	}
}

func TestL_NoCallID(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json", Output: &buf})

	ctx := WithLogger(context.Background(), l)

	// L() without a call ID should just return the logger
	L(ctx).Info("test message")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if _, ok := logEntry["call_id"]; ok {
		t.Error("Should not have call_id when not set")
	}
}
