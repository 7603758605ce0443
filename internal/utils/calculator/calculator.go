package calculator

import (
	"github.com/shopspring/decimal"
)

// RoundingMode selects how a Calculator trims results to its scale.
type RoundingMode int

const (
	// RoundDown truncates toward zero.
	RoundDown RoundingMode = iota
	// RoundHalfUp rounds half away from zero.
	RoundHalfUp
	// RoundUp rounds away from zero.
	RoundUp
	// RoundHalfEven is banker's rounding.
	RoundHalfEven
)

// defaultDivScale is used for division when no scale was set.
const defaultDivScale int32 = 18

// Calculator chains decimal operations. When a scale is set every intermediate
// result is rounded to it with the configured mode.
// Example: calculator.Of(amount).Scale(2, calculator.RoundDown).Add(delta).Decimal()
type Calculator struct {
	value  decimal.Decimal
	scale  int32
	mode   RoundingMode
	scaled bool
}

// Of starts a calculation from v.
func Of(v decimal.Decimal) *Calculator {
	return &Calculator{value: v}
}

// Zero starts a calculation from zero.
func Zero() *Calculator {
	return Of(decimal.Zero)
}

// Scale fixes the number of fractional digits and rounding mode. The current
// value is rounded immediately.
func (c *Calculator) Scale(scale int32, mode RoundingMode) *Calculator {
	c.scale = scale
	c.mode = mode
	c.scaled = true
	c.value = c.round(c.value)
	return c
}

// Add adds v.
func (c *Calculator) Add(v decimal.Decimal) *Calculator {
	c.value = c.round(c.value.Add(v))
	return c
}

// Sub subtracts v.
func (c *Calculator) Sub(v decimal.Decimal) *Calculator {
	c.value = c.round(c.value.Sub(v))
	return c
}

// Mul multiplies by v.
func (c *Calculator) Mul(v decimal.Decimal) *Calculator {
	c.value = c.round(c.value.Mul(v))
	return c
}

// Div divides by v. Division by zero panics, as in decimal.Decimal.
func (c *Calculator) Div(v decimal.Decimal) *Calculator {
	scale := defaultDivScale
	if c.scaled && c.scale+1 > scale {
		scale = c.scale + 1
	}
	c.value = c.round(c.value.DivRound(v, scale))
	return c
}

// Decimal returns the current value.
func (c *Calculator) Decimal() decimal.Decimal {
	return c.value
}

func (c *Calculator) round(v decimal.Decimal) decimal.Decimal {
	if !c.scaled {
		return v
	}
	return Round(v, c.scale, c.mode)
}

// Round rounds v to scale fractional digits using mode.
func Round(v decimal.Decimal, scale int32, mode RoundingMode) decimal.Decimal {
	switch mode {
	case RoundHalfUp:
		return v.Round(scale)
	case RoundUp:
		return v.RoundUp(scale)
	case RoundHalfEven:
		return v.RoundBank(scale)
	default:
		return v.Truncate(scale)
	}
}
