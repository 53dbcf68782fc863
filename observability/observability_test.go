package observability

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFields(t *testing.T) {
	if f := String("name", "doc.pdf"); f.Key() != "name" || f.Value() != "doc.pdf" {
		t.Errorf("String field mismatch: %v=%v", f.Key(), f.Value())
	}
	if f := Int("pages", 7); f.Value() != 7 {
		t.Errorf("Int field mismatch: %v", f.Value())
	}
	if f := Int64("size", int64(42)); f.Value() != int64(42) {
		t.Errorf("Int64 field mismatch: %v", f.Value())
	}
	err := errors.New("boom")
	if f := Error("err", err); f.Value() != err {
		t.Errorf("Error field mismatch: %v", f.Value())
	}
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Info("loaded", String("name", "a.pdf"), Int("pages", 3))
	logger.With(String("tool", "merge")).Error("failed", Error("err", errors.New("bad")))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "loaded" || len(entries[0].Context) != 2 {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Message != "failed" || len(entries[1].Context) != 2 {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	if _, ok := l.With(String("a", "b")).(NopLogger); !ok {
		t.Error("With should return a NopLogger")
	}
}
