package domain

import (
	"time"

	"github.com/SscSPs/cash_ledger/internal/utils/calculator"
	"github.com/shopspring/decimal"
)

// CashBalance is the materialized balance of an account in one currency as of
// BaseDay. The row for the latest BaseDay is the current balance; older rows are
// snapshots.
type CashBalance struct {
	CashBalanceID string          `json:"cashBalanceID"`
	AccountID     string          `json:"accountID"`
	Currency      string          `json:"currency"`
	BaseDay       time.Time       `json:"baseDay"`
	Amount        decimal.Decimal `json:"amount"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NewCashBalance creates the balance row for now.Day carrying amount forward.
func NewCashBalance(id, accountID, currency string, amount decimal.Decimal, now TimePoint) CashBalance {
	return CashBalance{
		CashBalanceID: id,
		AccountID:     accountID,
		Currency:      currency,
		BaseDay:       now.Day,
		Amount:        calculator.Round(amount, CurrencyScale(currency), calculator.RoundDown),
		UpdatedAt:     now.Date,
	}
}

// Add applies delta. The sum is truncated to the currency scale once.
func (b *CashBalance) Add(delta decimal.Decimal, at time.Time) {
	b.Amount = calculator.Of(b.Amount).
		Scale(CurrencyScale(b.Currency), calculator.RoundDown).
		Add(delta).
		Decimal()
	b.UpdatedAt = at
}
