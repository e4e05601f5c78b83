// Package operations defines the arithmetic strategies the calculator can
// execute and the registry that maps command names to them.
package operations

import (
	"math"

	"github.com/shopspring/decimal"

	"go-decimal-calculator/internal/calcerr"
)

// Operation is a single binary arithmetic strategy. Implementations are
// stateless and safe to share across calls.
type Operation interface {
	// Execute validates the operands and computes the result.
	Execute(a, b decimal.Decimal) (decimal.Decimal, error)

	// Validate checks the operands without computing anything. Execute
	// runs the same checks itself; Validate exists for callers that want
	// to pre-flight input.
	Validate(a, b decimal.Decimal) error

	// Name returns the display name recorded in history entries.
	Name() string
}

// Addition returns a + b.
type Addition struct{}

func (Addition) Name() string { return "Addition" }

func (Addition) Validate(a, b decimal.Decimal) error { return nil }

func (op Addition) Execute(a, b decimal.Decimal) (decimal.Decimal, error) {
	if err := op.Validate(a, b); err != nil {
		return decimal.Decimal{}, err
	}
	return a.Add(b), nil
}

// Subtraction returns a - b.
type Subtraction struct{}

func (Subtraction) Name() string { return "Subtraction" }

func (Subtraction) Validate(a, b decimal.Decimal) error { return nil }

func (op Subtraction) Execute(a, b decimal.Decimal) (decimal.Decimal, error) {
	if err := op.Validate(a, b); err != nil {
		return decimal.Decimal{}, err
	}
	return a.Sub(b), nil
}

// Multiplication returns a * b.
type Multiplication struct{}

func (Multiplication) Name() string { return "Multiplication" }

func (Multiplication) Validate(a, b decimal.Decimal) error { return nil }

func (op Multiplication) Execute(a, b decimal.Decimal) (decimal.Decimal, error) {
	if err := op.Validate(a, b); err != nil {
		return decimal.Decimal{}, err
	}
	return a.Mul(b), nil
}

// Division returns a / b. The second operand must be non-zero.
type Division struct{}

func (Division) Name() string { return "Division" }

func (Division) Validate(a, b decimal.Decimal) error {
	if b.IsZero() {
		return calcerr.NewValidation("division by zero is not allowed")
	}
	return nil
}

func (op Division) Execute(a, b decimal.Decimal) (decimal.Decimal, error) {
	if err := op.Validate(a, b); err != nil {
		return decimal.Decimal{}, err
	}
	return a.Div(b), nil
}

// Power returns a raised to b. Negative exponents are rejected. The
// exponentiation is done in float64 and the result re-encoded as a
// decimal; this precision-loss boundary is deliberate and load-bearing
// for compatibility with recorded history.
type Power struct{}

func (Power) Name() string { return "Power" }

func (Power) Validate(a, b decimal.Decimal) error {
	if b.IsNegative() {
		return calcerr.NewValidation("negative exponents not supported")
	}
	return nil
}

func (op Power) Execute(a, b decimal.Decimal) (decimal.Decimal, error) {
	if err := op.Validate(a, b); err != nil {
		return decimal.Decimal{}, err
	}
	af, _ := a.Float64()
	bf, _ := b.Float64()
	return decimalFromFloat(math.Pow(af, bf))
}

// Root returns the b-th root of a. Negative bases and zero degrees are
// rejected. Like Power, it routes through float64 on purpose.
type Root struct{}

func (Root) Name() string { return "Root" }

func (Root) Validate(a, b decimal.Decimal) error {
	if a.IsNegative() {
		return calcerr.NewValidation("cannot calculate root of negative number")
	}
	if b.IsZero() {
		return calcerr.NewValidation("zero root is undefined")
	}
	return nil
}

func (op Root) Execute(a, b decimal.Decimal) (decimal.Decimal, error) {
	if err := op.Validate(a, b); err != nil {
		return decimal.Decimal{}, err
	}
	af, _ := a.Float64()
	bf, _ := b.Float64()
	return decimalFromFloat(math.Pow(af, 1/bf))
}

// Modulus returns a mod b with the sign of the dividend. The second
// operand must be non-zero.
type Modulus struct{}

func (Modulus) Name() string { return "Modulus" }

func (Modulus) Validate(a, b decimal.Decimal) error {
	if b.IsZero() {
		return calcerr.NewValidation("modulus by zero is not allowed")
	}
	return nil
}

func (op Modulus) Execute(a, b decimal.Decimal) (decimal.Decimal, error) {
	if err := op.Validate(a, b); err != nil {
		return decimal.Decimal{}, err
	}
	return a.Mod(b), nil
}

// IntDivide returns floor(a / b). The second operand must be non-zero.
type IntDivide struct{}

func (IntDivide) Name() string { return "IntDivide" }

func (IntDivide) Validate(a, b decimal.Decimal) error {
	if b.IsZero() {
		return calcerr.NewValidation("divide by zero is not allowed")
	}
	return nil
}

func (op IntDivide) Execute(a, b decimal.Decimal) (decimal.Decimal, error) {
	if err := op.Validate(a, b); err != nil {
		return decimal.Decimal{}, err
	}
	return floorDiv(a, b), nil
}

// Percent returns (a / b) * 100. The second operand must be non-zero.
type Percent struct{}

func (Percent) Name() string { return "Percent" }

func (Percent) Validate(a, b decimal.Decimal) error {
	if b.IsZero() {
		return calcerr.NewValidation("divide by zero is not allowed")
	}
	return nil
}

func (op Percent) Execute(a, b decimal.Decimal) (decimal.Decimal, error) {
	if err := op.Validate(a, b); err != nil {
		return decimal.Decimal{}, err
	}
	return a.Div(b).Mul(decimal.NewFromInt(100)), nil
}

// AbsoluteDifference returns |a - b|.
type AbsoluteDifference struct{}

func (AbsoluteDifference) Name() string { return "AbsoluteDifference" }

func (AbsoluteDifference) Validate(a, b decimal.Decimal) error { return nil }

func (op AbsoluteDifference) Execute(a, b decimal.Decimal) (decimal.Decimal, error) {
	if err := op.Validate(a, b); err != nil {
		return decimal.Decimal{}, err
	}
	return a.Sub(b).Abs(), nil
}

// floorDiv computes an exact floored integer quotient. QuoRem truncates
// toward zero, so a mixed-sign quotient with a remainder needs one more
// step down.
func floorDiv(a, b decimal.Decimal) decimal.Decimal {
	q, r := a.QuoRem(b, 0)
	if !r.IsZero() && a.Sign()*b.Sign() < 0 {
		q = q.Sub(decimal.NewFromInt(1))
	}
	return q
}

// decimalFromFloat re-encodes a float computation as a decimal. Non-finite
// results cannot be represented and surface as operation errors.
func decimalFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, calcerr.NewOperation("calculation failed: result %v is not representable", f)
	}
	return decimal.NewFromFloat(f), nil
}
