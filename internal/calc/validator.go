package calc

import (
	"strings"

	"github.com/shopspring/decimal"

	"go-decimal-calculator/internal/calcerr"
)

// ValidateNumber parses raw user input into an exact decimal, rejecting
// unparseable values and magnitudes beyond max.
func ValidateNumber(raw string, max decimal.Decimal) (decimal.Decimal, error) {
	number, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, calcerr.NewValidation("invalid number format: %s", raw)
	}
	if number.Abs().GreaterThan(max) {
		return decimal.Decimal{}, calcerr.NewValidation("value exceeds maximum allowed: %s", max)
	}
	return number, nil
}
