package structs

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Money is a monetary amount in cents. The upstream catalog API sends
// decimal amounts; they are converted to minor units at the decode boundary
// so all arithmetic downstream is integer arithmetic.
type Money int64

// MoneyFromDecimal converts a decimal amount (e.g. 19.99) to cents,
// rounding half away from zero.
func MoneyFromDecimal(amount float64) Money {
	return Money(math.Round(amount * 100))
}

// Cents returns the raw minor-unit value.
func (m Money) Cents() int64 {
	return int64(m)
}

// Mul multiplies the amount by a quantity.
func (m Money) Mul(quantity int) Money {
	return m * Money(quantity)
}

// String renders the amount as a decimal string with two places.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// UnmarshalJSON accepts a JSON number or a numeric string. Either form is
// interpreted as a decimal amount in major units.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*m = MoneyFromDecimal(v)
		return nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid money value %q: %w", v, err)
		}
		*m = MoneyFromDecimal(f)
		return nil
	case nil:
		*m = 0
		return nil
	default:
		return fmt.Errorf("invalid money value of type %T", raw)
	}
}

// MarshalJSON renders the amount as a decimal JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}
