package domain

import (
	"strings"

	"golang.org/x/text/currency"
)

// defaultCurrencyScale is used for codes that are not ISO 4217.
const defaultCurrencyScale int32 = 2

// CurrencyScale returns the canonical number of fractional digits for an ISO 4217
// currency code (2 for USD, 0 for JPY, 3 for BHD).
func CurrencyScale(code string) int32 {
	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return defaultCurrencyScale
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}
