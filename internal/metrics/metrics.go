// Package metrics keeps in-process Prometheus instruments for the
// calculator domain. There is no scrape endpoint; the registry is gathered
// locally and rendered by the REPL's stats command.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"go-decimal-calculator/internal/calc"
	"go-decimal-calculator/internal/calcerr"
)

var registry = prometheus.NewRegistry()

// Instruments — registered once via Init().
var (
	opsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "calculator_operations_total",
		Help: "Total number of calculator operations performed.",
	}, []string{"operation"})

	errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "calculator_errors_total",
		Help: "Total number of calculator errors.",
	}, []string{"operation"})

	lastResult = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "calculator_last_result",
		Help: "The result of the last calculator operation.",
	}, []string{"operation"})
)

// Init registers the calculator instruments. Call once at startup;
// re-registration is tolerated so tests can call it freely.
func Init() error {
	for _, c := range []prometheus.Collector{opsTotal, errorsTotal, lastResult} {
		if err := registry.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return fmt.Errorf("registering calculator metrics: %w", err)
		}
	}
	return nil
}

// RecordError counts a failed operation attempt.
func RecordError(operation string) {
	errorsTotal.WithLabelValues(operation).Inc()
}

// Observer feeds the instruments from completed calculations.
type Observer struct{}

func NewObserver() *Observer {
	return &Observer{}
}

func (o *Observer) Update(c *calc.Calculation) error {
	if c == nil {
		return calcerr.NewOperation("calculation cannot be nil")
	}
	opsTotal.WithLabelValues(c.Operation).Inc()

	f, _ := c.Result.Float64()
	lastResult.WithLabelValues(c.Operation).Set(f)
	return nil
}

// Snapshot gathers the registry and renders one text line per sample,
// Prometheus exposition style.
func Snapshot() ([]string, error) {
	families, err := registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for i, lp := range m.GetLabel() {
				if i > 0 {
					labels += ","
				}
				labels += fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
			}

			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			}

			if labels != "" {
				lines = append(lines, fmt.Sprintf("%s{%s} %v", mf.GetName(), labels, value))
			} else {
				lines = append(lines, fmt.Sprintf("%s %v", mf.GetName(), value))
			}
		}
	}
	return lines, nil
}
