package calc

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-decimal-calculator/internal/calcerr"
	"go-decimal-calculator/internal/config"
	"go-decimal-calculator/internal/observability"
	"go-decimal-calculator/internal/operations"
)

// HistoryStore persists and restores the calculation history.
type HistoryStore interface {
	Save(history []Calculation) error
	Load() ([]Calculation, error)
}

// Calculator orchestrates validation, strategy execution, history
// recording, undo/redo and observer notification. It is not safe for
// concurrent use; callers drive it from a single goroutine.
type Calculator struct {
	cfg   *config.Config
	store HistoryStore

	history   []Calculation
	strategy  operations.Operation
	observers []Observer
	undoStack []*Memento
	redoStack []*Memento
}

// New builds a calculator. The store may be nil when persistence is not
// wanted; Save/LoadHistory then fail with an OperationError.
func New(cfg *config.Config, store HistoryStore) *Calculator {
	return &Calculator{cfg: cfg, store: store}
}

// SetOperation selects the active strategy for subsequent
// PerformOperation calls.
func (c *Calculator) SetOperation(op operations.Operation) {
	c.strategy = op
	observability.Logger.Info("set operation", zap.String("operation", op.Name()))
}

// AddObserver appends an observer; notification order is insertion order.
func (c *Calculator) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
	observability.Logger.Info("added observer")
}

// RemoveObserver removes a previously added observer.
func (c *Calculator) RemoveObserver(o Observer) error {
	for i, existing := range c.observers {
		if existing == o {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			observability.Logger.Info("removed observer")
			return nil
		}
	}
	return calcerr.NewValidation("observer not registered")
}

func (c *Calculator) notifyObservers(calculation *Calculation) error {
	for _, o := range c.observers {
		if err := o.Update(calculation); err != nil {
			return err
		}
	}
	return nil
}

// PerformOperation validates both operands, executes the active strategy
// and, on success, records a pre-mutation memento, appends the new
// calculation (evicting the oldest entry past the history cap) and
// notifies observers. Nothing is mutated until validation, execution and
// record construction have all succeeded. The raw numeric result is
// returned; the Calculation itself lives in history.
func (c *Calculator) PerformOperation(a, b string) (decimal.Decimal, error) {
	if c.strategy == nil {
		return decimal.Decimal{}, calcerr.NewOperation("no operation set")
	}

	first, err := ValidateNumber(a, c.cfg.MaxInputValue)
	if err != nil {
		observability.Logger.Error("validation error", zap.Error(err))
		return decimal.Decimal{}, err
	}
	second, err := ValidateNumber(b, c.cfg.MaxInputValue)
	if err != nil {
		observability.Logger.Error("validation error", zap.Error(err))
		return decimal.Decimal{}, err
	}

	result, err := c.strategy.Execute(first, second)
	if err != nil {
		observability.Logger.Error("operation error", zap.Error(err))
		return decimal.Decimal{}, err
	}

	calculation, err := NewCalculation(c.strategy.Name(), first, second)
	if err != nil {
		observability.Logger.Error("operation error", zap.Error(err))
		return decimal.Decimal{}, err
	}

	c.recordBeforeChange()
	c.history = append(c.history, *calculation)
	if len(c.history) > c.cfg.MaxHistorySize {
		c.history = c.history[1:]
	}

	if err := c.notifyObservers(calculation); err != nil {
		observability.Logger.Error("observer error", zap.Error(err))
		return decimal.Decimal{}, calcerr.WrapOperation(err, "operation failed")
	}
	return result, nil
}

// recordBeforeChange pushes a snapshot of the current history onto the
// undo stack and clears the redo stack; a new action invalidates the redo
// path.
func (c *Calculator) recordBeforeChange() {
	c.undoStack = append(c.undoStack, NewMemento(c.history))
	c.redoStack = nil
}

// Undo restores the history state preceding the last undoable change.
// It reports false when there is nothing to undo.
func (c *Calculator) Undo() bool {
	if len(c.undoStack) == 0 {
		return false
	}
	m := c.undoStack[len(c.undoStack)-1]
	c.undoStack = c.undoStack[:len(c.undoStack)-1]
	c.redoStack = append(c.redoStack, NewMemento(c.history))
	c.history = m.Restore()
	return true
}

// Redo re-applies the last undone change. It reports false when there is
// nothing to redo.
func (c *Calculator) Redo() bool {
	if len(c.redoStack) == 0 {
		return false
	}
	m := c.redoStack[len(c.redoStack)-1]
	c.redoStack = c.redoStack[:len(c.redoStack)-1]
	c.undoStack = append(c.undoStack, NewMemento(c.history))
	c.history = m.Restore()
	return true
}

// ClearHistory empties the live history together with both stacks. No
// other path clears the stacks when history is cleared.
func (c *Calculator) ClearHistory() {
	c.history = nil
	c.undoStack = nil
	c.redoStack = nil
	observability.Logger.Info("history cleared")
}

// History returns a copy of the live history, most recent last.
func (c *Calculator) History() []Calculation {
	return copyHistory(c.history)
}

// FormatHistory renders every history entry as
// "operation(first, second) = result".
func (c *Calculator) FormatHistory() []string {
	out := make([]string, 0, len(c.history))
	for i := range c.history {
		out = append(out, c.history[i].String())
	}
	return out
}

// SaveHistory writes the history through the configured store.
func (c *Calculator) SaveHistory() error {
	if c.store == nil {
		return calcerr.NewOperation("no history store configured")
	}
	if err := c.store.Save(c.History()); err != nil {
		observability.Logger.Error("failed to save history", zap.Error(err))
		return calcerr.WrapOperation(err, "failed to save history")
	}
	observability.Logger.Info("history saved", zap.Int("entries", len(c.history)))
	return nil
}

// LoadHistory replaces the live history with the stored one. The undo and
// redo stacks are left untouched.
func (c *Calculator) LoadHistory() error {
	if c.store == nil {
		return calcerr.NewOperation("no history store configured")
	}
	history, err := c.store.Load()
	if err != nil {
		observability.Logger.Error("failed to load history", zap.Error(err))
		return calcerr.WrapOperation(err, "failed to load history")
	}
	c.history = history
	observability.Logger.Info("history loaded", zap.Int("entries", len(c.history)))
	return nil
}

// AutoSaveEnabled reports the configured autosave flag. Together with
// SaveHistory it satisfies the HistorySaver capability the autosave
// observer requires.
func (c *Calculator) AutoSaveEnabled() bool {
	return c.cfg.AutoSave
}
