// Package testutil holds small helpers shared by the package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"go-decimal-calculator/internal/config"
)

// MustDecimal parses s or fails the test.
func MustDecimal(t testing.TB, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parsing decimal %q: %v", s, err)
	}
	return d
}

// CheckDecimal fails the test unless got equals the decimal form of want.
func CheckDecimal(t testing.TB, want string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(MustDecimal(t, want)) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

// TempCSVPath returns a history file path inside a per-test temp dir.
func TempCSVPath(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "calculator_history.csv")
}

// NewConfig returns a valid config for tests, detached from the
// environment.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()
	return &config.Config{
		BaseDir:        t.TempDir(),
		MaxHistorySize: 1000,
		AutoSave:       false,
		Precision:      10,
		MaxInputValue:  MustDecimal(t, "1e999"),
	}
}
