package calc

import (
	"errors"
	"strings"
	"testing"

	"go-decimal-calculator/internal/calcerr"
	"go-decimal-calculator/internal/config"
	"go-decimal-calculator/internal/operations"
	"go-decimal-calculator/internal/testutil"
)

type memStore struct {
	saved   []Calculation
	saveErr error
	loadErr error
}

func (s *memStore) Save(history []Calculation) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append([]Calculation(nil), history...)
	return nil
}

func (s *memStore) Load() ([]Calculation, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]Calculation(nil), s.saved...), nil
}

type recordingObserver struct {
	id   string
	seen *[]string
	err  error
}

func (o *recordingObserver) Update(c *Calculation) error {
	if c == nil {
		return calcerr.NewOperation("calculation cannot be nil")
	}
	*o.seen = append(*o.seen, o.id)
	return o.err
}

func newTestCalculator(t *testing.T, cfg *config.Config) *Calculator {
	t.Helper()
	if cfg == nil {
		cfg = testutil.NewConfig(t)
	}
	return New(cfg, &memStore{})
}

func perform(t *testing.T, c *Calculator, name, a, b string) {
	t.Helper()
	op, err := operations.NewRegistry().Create(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.SetOperation(op)
	if _, err := c.PerformOperation(a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPerformOperationRequiresStrategy(t *testing.T) {
	c := newTestCalculator(t, nil)

	_, err := c.PerformOperation("2", "3")
	if err == nil {
		t.Fatal("expected missing strategy to fail")
	}
	var oerr *calcerr.OperationError
	if !errors.As(err, &oerr) {
		t.Fatalf("expected OperationError, got %T: %v", err, err)
	}
}

func TestPerformOperationHappyPath(t *testing.T) {
	c := newTestCalculator(t, nil)
	c.SetOperation(operations.Addition{})

	result, err := c.PerformOperation("2", "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.CheckDecimal(t, "5", result)

	history := c.History()
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if history[0].Operation != "Addition" {
		t.Fatalf("expected Addition entry, got %q", history[0].Operation)
	}
	testutil.CheckDecimal(t, "5", history[0].Result)
}

func TestPerformOperationFailuresLeaveStateUntouched(t *testing.T) {
	tests := []struct {
		name string
		op   operations.Operation
		a, b string
	}{
		{name: "unparseable operand", op: operations.Addition{}, a: "two", b: "3"},
		{name: "division by zero", op: operations.Division{}, a: "8", b: "0"},
		{name: "negative exponent", op: operations.Power{}, a: "2", b: "-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestCalculator(t, nil)
			c.SetOperation(tc.op)

			if _, err := c.PerformOperation(tc.a, tc.b); err == nil {
				t.Fatal("expected operation to fail")
			}

			if len(c.History()) != 0 {
				t.Fatal("expected history to stay empty")
			}
			if c.Undo() {
				t.Fatal("expected undo stack to stay empty")
			}
			if c.Redo() {
				t.Fatal("expected redo stack to stay empty")
			}
		})
	}
}

func TestPerformOperationRejectsOversizedInput(t *testing.T) {
	cfg := testutil.NewConfig(t)
	cfg.MaxInputValue = testutil.MustDecimal(t, "100")
	c := newTestCalculator(t, cfg)
	c.SetOperation(operations.Addition{})

	_, err := c.PerformOperation("101", "1")
	if err == nil {
		t.Fatal("expected oversized input to fail")
	}
	var verr *calcerr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

// The IntDivide strategy executes fine, but its display name has never
// matched the record table's "IntegerDivison" key, so the run fails at
// record construction before any state mutation.
func TestPerformOperationIntDivideNameMismatch(t *testing.T) {
	c := newTestCalculator(t, nil)
	c.SetOperation(operations.IntDivide{})

	_, err := c.PerformOperation("10", "3")
	if err == nil {
		t.Fatal("expected int_divide to fail")
	}
	if !strings.Contains(err.Error(), "unknown operation: IntDivide") {
		t.Fatalf("unexpected error %q", err.Error())
	}
	if len(c.History()) != 0 {
		t.Fatal("expected history to stay empty")
	}
	if c.Undo() {
		t.Fatal("expected undo stack to stay empty")
	}
}

func TestUndoRedo(t *testing.T) {
	c := newTestCalculator(t, nil)

	if c.Undo() {
		t.Fatal("expected undo on empty stack to report false")
	}
	if c.Redo() {
		t.Fatal("expected redo on empty stack to report false")
	}

	perform(t, c, "add", "2", "3")
	perform(t, c, "multiply", "4", "5")

	if !c.Undo() {
		t.Fatal("expected undo to succeed")
	}
	history := c.History()
	if len(history) != 1 || history[0].Operation != "Addition" {
		t.Fatalf("expected pre-operation state, got %v", c.FormatHistory())
	}

	if !c.Redo() {
		t.Fatal("expected redo to succeed")
	}
	history = c.History()
	if len(history) != 2 || history[1].Operation != "Multiplication" {
		t.Fatalf("expected post-operation state, got %v", c.FormatHistory())
	}
}

func TestNewOperationAfterUndoClearsRedo(t *testing.T) {
	c := newTestCalculator(t, nil)

	perform(t, c, "add", "2", "3")
	if !c.Undo() {
		t.Fatal("expected undo to succeed")
	}

	perform(t, c, "subtract", "9", "1")
	if c.Redo() {
		t.Fatal("expected redo stack to be cleared by the new operation")
	}
}

func TestHistoryEvictsOldestPastCap(t *testing.T) {
	cfg := testutil.NewConfig(t)
	cfg.MaxHistorySize = 3
	c := newTestCalculator(t, cfg)

	perform(t, c, "add", "1", "1")
	perform(t, c, "add", "2", "2")
	perform(t, c, "add", "3", "3")
	perform(t, c, "add", "4", "4")

	history := c.History()
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	testutil.CheckDecimal(t, "4", history[0].Result)
	testutil.CheckDecimal(t, "8", history[2].Result)
}

func TestClearHistoryClearsStacksToo(t *testing.T) {
	c := newTestCalculator(t, nil)
	perform(t, c, "add", "2", "3")

	c.ClearHistory()

	if len(c.History()) != 0 {
		t.Fatal("expected empty history")
	}
	if c.Undo() {
		t.Fatal("expected undo stack to be cleared")
	}
	if c.Redo() {
		t.Fatal("expected redo stack to be cleared")
	}
}

func TestObserversNotifiedInOrder(t *testing.T) {
	c := newTestCalculator(t, nil)
	var seen []string
	c.AddObserver(&recordingObserver{id: "first", seen: &seen})
	c.AddObserver(&recordingObserver{id: "second", seen: &seen})

	perform(t, c, "add", "2", "3")

	if len(seen) != 2 || seen[0] != "first" || seen[1] != "second" {
		t.Fatalf("expected [first second], got %v", seen)
	}
}

func TestRemoveObserver(t *testing.T) {
	c := newTestCalculator(t, nil)
	var seen []string
	kept := &recordingObserver{id: "kept", seen: &seen}
	removed := &recordingObserver{id: "removed", seen: &seen}
	c.AddObserver(kept)
	c.AddObserver(removed)

	if err := c.RemoveObserver(removed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	perform(t, c, "add", "2", "3")

	if len(seen) != 1 || seen[0] != "kept" {
		t.Fatalf("expected only kept observer notified, got %v", seen)
	}

	if err := c.RemoveObserver(removed); err == nil {
		t.Fatal("expected removing an unregistered observer to fail")
	}
}

func TestObserverFailureSurfacesAsOperationError(t *testing.T) {
	c := newTestCalculator(t, nil)
	var seen []string
	c.AddObserver(&recordingObserver{id: "broken", seen: &seen, err: errors.New("boom")})
	c.SetOperation(operations.Addition{})

	_, err := c.PerformOperation("2", "3")
	if err == nil {
		t.Fatal("expected observer failure to surface")
	}
	var oerr *calcerr.OperationError
	if !errors.As(err, &oerr) {
		t.Fatalf("expected OperationError, got %T: %v", err, err)
	}
}

func TestSaveAndLoadHistory(t *testing.T) {
	store := &memStore{}
	c := New(testutil.NewConfig(t), store)
	perform(t, c, "add", "2", "3")

	if err := c.SaveHistory(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected 1 saved entry, got %d", len(store.saved))
	}

	c.ClearHistory()
	if err := c.LoadHistory(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	history := c.History()
	if len(history) != 1 {
		t.Fatalf("expected 1 loaded entry, got %d", len(history))
	}
	testutil.CheckDecimal(t, "5", history[0].Result)
}

func TestSaveLoadWithoutStore(t *testing.T) {
	c := New(testutil.NewConfig(t), nil)

	if err := c.SaveHistory(); err == nil {
		t.Fatal("expected save without store to fail")
	}
	if err := c.LoadHistory(); err == nil {
		t.Fatal("expected load without store to fail")
	}
}

func TestSaveHistoryWrapsStoreError(t *testing.T) {
	c := New(testutil.NewConfig(t), &memStore{saveErr: errors.New("disk full")})

	err := c.SaveHistory()
	if err == nil {
		t.Fatal("expected save failure")
	}
	if !strings.Contains(err.Error(), "failed to save history") {
		t.Fatalf("unexpected error %q", err.Error())
	}
}

func TestAutoSaveEnabledReflectsConfig(t *testing.T) {
	cfg := testutil.NewConfig(t)
	cfg.AutoSave = true
	if !newTestCalculator(t, cfg).AutoSaveEnabled() {
		t.Fatal("expected autosave to be enabled")
	}

	cfg.AutoSave = false
	if newTestCalculator(t, cfg).AutoSaveEnabled() {
		t.Fatal("expected autosave to be disabled")
	}
}
