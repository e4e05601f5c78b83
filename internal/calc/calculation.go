// Package calc implements the calculation engine: the Calculation record,
// the undo/redo memento stack, observer notification and the Calculator
// facade that ties them together.
package calc

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-decimal-calculator/internal/calcerr"
	"go-decimal-calculator/internal/observability"
)

// Calculation is a single performed operation: the operation's display
// name, both operands, the result computed once at construction, and a
// creation timestamp. It is immutable after construction.
type Calculation struct {
	Operation     string
	FirstOperand  decimal.Decimal
	SecondOperand decimal.Decimal
	Result        decimal.Decimal
	Timestamp     time.Time
}

// NewCalculation computes and records one operation. The record carries
// its own rule table keyed by display names; an unmatched name or an
// arithmetic failure during evaluation is an OperationError.
func NewCalculation(operation string, first, second decimal.Decimal) (*Calculation, error) {
	c := &Calculation{
		Operation:     operation,
		FirstOperand:  first,
		SecondOperand: second,
		Timestamp:     time.Now(),
	}

	result, err := c.calculate()
	if err != nil {
		return nil, err
	}
	c.Result = result
	return c, nil
}

type rule func(a, b decimal.Decimal) (decimal.Decimal, error)

// calculationRules is the record's internal copy of the ten arithmetic
// rules. The "IntegerDivison" key is a historical misspelling: the
// IntDivide strategy's display name never matches it, so int_divide runs
// fail record construction. Recorded history depends on these exact
// strings; do not unify them.
var calculationRules = map[string]rule{
	"Addition": func(a, b decimal.Decimal) (decimal.Decimal, error) {
		return a.Add(b), nil
	},
	"Subtraction": func(a, b decimal.Decimal) (decimal.Decimal, error) {
		return a.Sub(b), nil
	},
	"Multiplication": func(a, b decimal.Decimal) (decimal.Decimal, error) {
		return a.Mul(b), nil
	},
	"Division": func(a, b decimal.Decimal) (decimal.Decimal, error) {
		if b.IsZero() {
			return decimal.Decimal{}, errDivisionByZero()
		}
		return a.Div(b), nil
	},
	"Power": func(a, b decimal.Decimal) (decimal.Decimal, error) {
		if b.IsNegative() {
			return decimal.Decimal{}, calcerr.NewOperation("negative exponents are not supported")
		}
		af, _ := a.Float64()
		bf, _ := b.Float64()
		return resultFromFloat(math.Pow(af, bf))
	},
	"Root": func(a, b decimal.Decimal) (decimal.Decimal, error) {
		if a.IsNegative() || b.IsZero() {
			return decimal.Decimal{}, errInvalidRoot(a, b)
		}
		af, _ := a.Float64()
		bf, _ := b.Float64()
		return resultFromFloat(math.Pow(af, 1/bf))
	},
	"Modulus": func(a, b decimal.Decimal) (decimal.Decimal, error) {
		if b.IsZero() {
			return decimal.Decimal{}, errDivisionByZero()
		}
		return a.Mod(b), nil
	},
	"IntegerDivison": func(a, b decimal.Decimal) (decimal.Decimal, error) {
		if b.IsZero() {
			return decimal.Decimal{}, errDivisionByZero()
		}
		q, r := a.QuoRem(b, 0)
		if !r.IsZero() && a.Sign()*b.Sign() < 0 {
			q = q.Sub(decimal.NewFromInt(1))
		}
		return q, nil
	},
	"Percent": func(a, b decimal.Decimal) (decimal.Decimal, error) {
		if b.IsZero() {
			return decimal.Decimal{}, errDivisionByZero()
		}
		return a.Div(b).Mul(decimal.NewFromInt(100)), nil
	},
	"AbsoluteDifference": func(a, b decimal.Decimal) (decimal.Decimal, error) {
		return a.Sub(b).Abs(), nil
	},
}

func (c *Calculation) calculate() (decimal.Decimal, error) {
	r, ok := calculationRules[c.Operation]
	if !ok {
		return decimal.Decimal{}, calcerr.NewOperation("unknown operation: %s", c.Operation)
	}
	return r(c.FirstOperand, c.SecondOperand)
}

func errDivisionByZero() error {
	return calcerr.NewOperation("division by zero is not allowed")
}

// errInvalidRoot reports why a root is undefined. The zero-degree check
// deliberately outranks the negative-base check; both may hold at once
// and recorded error messages depend on this order.
func errInvalidRoot(a, b decimal.Decimal) error {
	if b.IsZero() {
		return calcerr.NewOperation("zero root is undefined")
	}
	if a.IsNegative() {
		return calcerr.NewOperation("cannot calculate root of negative number")
	}
	return calcerr.NewOperation("invalid root operation")
}

func resultFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, calcerr.NewOperation("calculation failed: result %v is not representable", f)
	}
	return decimal.NewFromFloat(f), nil
}

// Equal compares operation, operands and result. Timestamps are excluded.
func (c *Calculation) Equal(other *Calculation) bool {
	if other == nil {
		return false
	}
	return c.Operation == other.Operation &&
		c.FirstOperand.Equal(other.FirstOperand) &&
		c.SecondOperand.Equal(other.SecondOperand) &&
		c.Result.Equal(other.Result)
}

func (c *Calculation) String() string {
	return fmt.Sprintf("%s(%s, %s) = %s", c.Operation, c.FirstOperand, c.SecondOperand, c.Result)
}

// FormatResult renders the result rounded to precision fractional digits
// with redundant trailing zeros stripped. An operation named
// "IntegerDivision" is truncated to an integer string instead; note that
// the execution path never produces that name (it records "IntDivide" and
// computes under "IntegerDivison"), so the branch only fires for records
// built with the literal name.
func (c *Calculation) FormatResult(precision int) (string, error) {
	if precision < 0 {
		return "", calcerr.NewValidation("precision must not be negative, got %d", precision)
	}

	if c.Operation == "IntegerDivision" {
		return c.Result.Truncate(0).String(), nil
	}

	s := c.Result.Round(int32(precision)).String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s, nil
}

// Map serialization keys.
const (
	keyOperation     = "operation"
	keyFirstOperand  = "first_operand"
	keySecondOperand = "second_operand"
	keyResult        = "result"
	keyTimestamp     = "timestamp"
)

// ToMap serializes the record to a string-keyed map. Operands and result
// keep their exact decimal form; the timestamp is ISO-8601.
func (c *Calculation) ToMap() map[string]string {
	return map[string]string{
		keyOperation:     c.Operation,
		keyFirstOperand:  c.FirstOperand.String(),
		keySecondOperand: c.SecondOperand.String(),
		keyResult:        c.Result.String(),
		keyTimestamp:     c.Timestamp.Format(time.RFC3339Nano),
	}
}

// CalculationFromMap rebuilds a record from its map form. The result is
// recomputed from the operands; a stored result that differs from the
// recomputed value is logged as a warning and discarded.
func CalculationFromMap(data map[string]string) (*Calculation, error) {
	operation, err := requireKey(data, keyOperation)
	if err != nil {
		return nil, err
	}
	first, err := decimalField(data, keyFirstOperand)
	if err != nil {
		return nil, err
	}
	second, err := decimalField(data, keySecondOperand)
	if err != nil {
		return nil, err
	}
	saved, err := decimalField(data, keyResult)
	if err != nil {
		return nil, err
	}

	raw, err := requireKey(data, keyTimestamp)
	if err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, calcerr.WrapOperation(err, "invalid calculation data: bad timestamp %q", raw)
	}

	c, err := NewCalculation(operation, first, second)
	if err != nil {
		return nil, err
	}
	c.Timestamp = ts

	if !c.Result.Equal(saved) {
		observability.Logger.Warn("loaded calculation result differs from computed result",
			zap.String("operation", operation),
			zap.String("saved", saved.String()),
			zap.String("computed", c.Result.String()),
		)
	}
	return c, nil
}

func requireKey(data map[string]string, key string) (string, error) {
	v, ok := data[key]
	if !ok {
		return "", calcerr.NewOperation("invalid calculation data: missing %s", key)
	}
	return v, nil
}

func decimalField(data map[string]string, key string) (decimal.Decimal, error) {
	raw, err := requireKey(data, key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, calcerr.WrapOperation(err, "invalid calculation data: bad %s %q", key, raw)
	}
	return d, nil
}
