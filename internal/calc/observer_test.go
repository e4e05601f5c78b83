package calc

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go-decimal-calculator/internal/observability"
)

type fakeSaver struct {
	enabled bool
	saves   int
	err     error
}

func (f *fakeSaver) SaveHistory() error {
	f.saves++
	return f.err
}

func (f *fakeSaver) AutoSaveEnabled() bool {
	return f.enabled
}

func TestLoggingObserverWritesEntry(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	oldLogger := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = oldLogger })

	c := makeCalculation(t, "Addition", "2", "3")
	if err := NewLoggingObserver().Update(&c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Message != "calculation performed" {
		t.Fatalf("unexpected message %q", entries[0].Message)
	}
	fields := entries[0].ContextMap()
	if fields["operation"] != "Addition" {
		t.Fatalf("expected operation Addition, got %#v", fields["operation"])
	}
	if fields["result"] != "5" {
		t.Fatalf("expected result 5, got %#v", fields["result"])
	}
}

func TestLoggingObserverRejectsNilCalculation(t *testing.T) {
	if err := NewLoggingObserver().Update(nil); err == nil {
		t.Fatal("expected nil calculation to fail")
	}
}

func TestAutoSaveObserver(t *testing.T) {
	t.Run("saves when enabled", func(t *testing.T) {
		saver := &fakeSaver{enabled: true}
		o, err := NewAutoSaveObserver(saver)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		c := makeCalculation(t, "Addition", "2", "3")
		if err := o.Update(&c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saver.saves != 1 {
			t.Fatalf("expected 1 save, got %d", saver.saves)
		}
	})

	t.Run("skips when disabled", func(t *testing.T) {
		saver := &fakeSaver{enabled: false}
		o, err := NewAutoSaveObserver(saver)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		c := makeCalculation(t, "Addition", "2", "3")
		if err := o.Update(&c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saver.saves != 0 {
			t.Fatalf("expected no saves, got %d", saver.saves)
		}
	})

	t.Run("propagates save failure", func(t *testing.T) {
		saver := &fakeSaver{enabled: true, err: errors.New("disk full")}
		o, err := NewAutoSaveObserver(saver)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		c := makeCalculation(t, "Addition", "2", "3")
		if err := o.Update(&c); err == nil {
			t.Fatal("expected save failure to propagate")
		}
	})

	t.Run("rejects nil saver", func(t *testing.T) {
		if _, err := NewAutoSaveObserver(nil); err == nil {
			t.Fatal("expected nil saver to fail")
		}
	})

	t.Run("rejects nil calculation", func(t *testing.T) {
		o, err := NewAutoSaveObserver(&fakeSaver{enabled: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := o.Update(nil); err == nil {
			t.Fatal("expected nil calculation to fail")
		}
	})
}
