/**
 * @description
 * Exact-decimal money amount used on every message and event. The payments
 * API emits the amount either as a JSON number or as a decimal-formatted
 * string depending on the producing service; both forms decode to the same
 * internal decimal value. Re-encoding always carries exactly two fractional
 * digits.
 *
 * @dependencies
 * - github.com/shopspring/decimal: Arbitrary-precision decimals; float64
 *   would lose precision on currency values.
 */
package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a currency amount with exact decimal semantics.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps an existing decimal value.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromString parses a decimal literal such as "19.9" or "10.01".
func AmountFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{Decimal: d}, nil
}

// Cents returns the integer-cent value, truncating anything beyond two
// fractional digits. 10.00 -> 1000, 10.01 -> 1001.
func (a Amount) Cents() int64 {
	return a.Mul(decimal.NewFromInt(100)).IntPart()
}

// Positive reports whether the amount is strictly greater than zero.
func (a Amount) Positive() bool {
	return a.Decimal.IsPositive()
}

// UnmarshalJSON accepts both a bare JSON number and a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	raw = strings.Trim(raw, `"`)
	parsed, err := AmountFromString(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON encodes the amount as a JSON number with exactly two
// fractional digits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

// String renders the amount with two fractional digits.
func (a Amount) String() string {
	return a.StringFixed(2)
}
