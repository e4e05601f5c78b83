package calc

import (
	"go.uber.org/zap"

	"go-decimal-calculator/internal/calcerr"
	"go-decimal-calculator/internal/observability"
)

// Observer is notified after every successful calculation. Implementations
// must reject a nil calculation with an error rather than skip it.
type Observer interface {
	Update(c *Calculation) error
}

// LoggingObserver writes one structured log line per calculation.
type LoggingObserver struct{}

func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{}
}

func (o *LoggingObserver) Update(c *Calculation) error {
	if c == nil {
		return calcerr.NewOperation("calculation cannot be nil")
	}
	observability.Logger.Info("calculation performed",
		zap.String("operation", c.Operation),
		zap.String("first_operand", c.FirstOperand.String()),
		zap.String("second_operand", c.SecondOperand.String()),
		zap.String("result", c.Result.String()),
	)
	return nil
}

// HistorySaver is the capability the autosave observer needs from its
// target: a save trigger and the flag that gates it.
type HistorySaver interface {
	SaveHistory() error
	AutoSaveEnabled() bool
}

// AutoSaveObserver saves history after each calculation when autosave is
// enabled on its target.
type AutoSaveObserver struct {
	saver HistorySaver
}

func NewAutoSaveObserver(saver HistorySaver) (*AutoSaveObserver, error) {
	if saver == nil {
		return nil, calcerr.NewValidation("autosave observer requires a history saver")
	}
	return &AutoSaveObserver{saver: saver}, nil
}

func (o *AutoSaveObserver) Update(c *Calculation) error {
	if c == nil {
		return calcerr.NewOperation("calculation cannot be nil")
	}
	if !o.saver.AutoSaveEnabled() {
		return nil
	}
	if err := o.saver.SaveHistory(); err != nil {
		return err
	}
	observability.Logger.Info("history auto-saved")
	return nil
}
