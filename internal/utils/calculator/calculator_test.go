package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculator_ScaleRoundDown(t *testing.T) {
	tests := []struct {
		start string
		delta string
		want  string
	}{
		{"10.02", "11.51", "21.53"},
		{"21.53", "11.516", "33.04"},
		{"33.04", "-41.51", "-8.47"},
		{"-8.47", "-0.009", "-8.47"},
		{"0", "0.999", "0.99"},
	}

	for _, tt := range tests {
		t.Run(tt.start+"+"+tt.delta, func(t *testing.T) {
			got := Of(dec(tt.start)).Scale(2, RoundDown).Add(dec(tt.delta)).Decimal()
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestCalculator_Unscaled(t *testing.T) {
	got := Of(dec("1.005")).Add(dec("0.0001")).Sub(dec("0.5")).Decimal()
	assert.True(t, dec("0.5051").Equal(got))
}

func TestCalculator_MulDiv(t *testing.T) {
	got := Of(dec("10")).Scale(2, RoundHalfUp).Div(dec("3")).Decimal()
	assert.True(t, dec("3.33").Equal(got))

	got = Of(dec("2.5")).Scale(0, RoundHalfEven).Mul(dec("1")).Decimal()
	assert.True(t, dec("2").Equal(got))

	got = Zero().Scale(0, RoundUp).Add(dec("1.01")).Decimal()
	assert.True(t, dec("2").Equal(got))
}

func TestRound(t *testing.T) {
	assert.Equal(t, "1.23", Round(dec("1.239"), 2, RoundDown).String())
	assert.Equal(t, "1.24", Round(dec("1.235"), 2, RoundHalfUp).String())
	assert.Equal(t, "-1.23", Round(dec("-1.239"), 2, RoundDown).String())
}
