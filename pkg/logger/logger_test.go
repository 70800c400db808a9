package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Level: zerolog.InfoLevel, Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithReservationID(ctx, "res-456")
	logg.Info(ctx, "reservation.created")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("request_id missing: %+v", entry)
	}
	if entry["reservation_id"] != "res-456" {
		t.Fatalf("reservation_id missing: %+v", entry)
	}
	if entry["service"] != "test" {
		t.Fatalf("service field missing: %+v", entry)
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatalf("expected info fallback")
	}
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatalf("expected debug")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatalf("expected info for empty")
	}
}
