package calc

import (
	"time"

	"go-decimal-calculator/internal/calcerr"
)

// Memento is an immutable snapshot of the full history sequence plus the
// time it was taken. The snapshot is deep-copied on the way in and on the
// way out, so it never aliases the live history.
type Memento struct {
	history   []Calculation
	timestamp time.Time
}

// NewMemento snapshots history.
func NewMemento(history []Calculation) *Memento {
	return &Memento{history: copyHistory(history), timestamp: time.Now()}
}

// Restore returns an independent copy of the snapshot.
func (m *Memento) Restore() []Calculation {
	return copyHistory(m.history)
}

// Len returns the number of calculations in the snapshot.
func (m *Memento) Len() int {
	return len(m.history)
}

// Timestamp returns when the snapshot was taken.
func (m *Memento) Timestamp() time.Time {
	return m.timestamp
}

// ToMaps serializes the snapshot as one map per calculation.
func (m *Memento) ToMaps() []map[string]string {
	out := make([]map[string]string, 0, len(m.history))
	for i := range m.history {
		out = append(out, m.history[i].ToMap())
	}
	return out
}

// MementoFromMaps rebuilds a snapshot from serialized calculations.
func MementoFromMaps(data []map[string]string, timestamp time.Time) (*Memento, error) {
	history := make([]Calculation, 0, len(data))
	for _, entry := range data {
		c, err := CalculationFromMap(entry)
		if err != nil {
			return nil, calcerr.WrapOperation(err, "invalid memento data")
		}
		history = append(history, *c)
	}
	return &Memento{history: history, timestamp: timestamp}, nil
}

func copyHistory(history []Calculation) []Calculation {
	out := make([]Calculation, len(history))
	copy(out, history)
	return out
}
