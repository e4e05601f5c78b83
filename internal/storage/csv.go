// Package storage persists calculation history as a CSV file.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go-decimal-calculator/internal/calc"
)

var columns = []string{"operation", "first_operand", "second_operand", "result", "timestamp"}

// CSVStore reads and writes history at a fixed file path. An empty history
// still writes the header row.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Save writes the full history, replacing any previous file.
func (s *CSVStore) Save(history []calc.Calculation) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create history file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range history {
		entry := history[i].ToMap()
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = entry[col]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush history file: %w", err)
	}
	return nil
}

// Load reads the stored history. A missing file is an empty history, not
// an error. Each row is rebuilt through the recompute-and-warn path.
func (s *CSVStore) Load() ([]calc.Calculation, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	history := make([]calc.Calculation, 0, len(records)-1)
	for _, row := range records[1:] {
		entry := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				entry[col] = row[i]
			}
		}
		c, err := calc.CalculationFromMap(entry)
		if err != nil {
			return nil, fmt.Errorf("load history row: %w", err)
		}
		history = append(history, *c)
	}
	return history, nil
}
