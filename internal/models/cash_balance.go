package models

import (
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashBalance is a row of cash_balances. (account_id, currency, base_day) is unique.
type CashBalance struct {
	CashBalanceID string          `db:"cash_balance_id"`
	AccountID     string          `db:"account_id"`
	Currency      string          `db:"currency"`
	BaseDay       time.Time       `db:"base_day"`
	Amount        decimal.Decimal `db:"amount"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (m CashBalance) ToDomain() domain.CashBalance {
	return domain.CashBalance{
		CashBalanceID: m.CashBalanceID,
		AccountID:     m.AccountID,
		Currency:      m.Currency,
		BaseDay:       domain.DateOf(m.BaseDay),
		Amount:        m.Amount,
		UpdatedAt:     m.UpdatedAt,
	}
}

func FromDomainCashBalance(d domain.CashBalance) CashBalance {
	return CashBalance{
		CashBalanceID: d.CashBalanceID,
		AccountID:     d.AccountID,
		Currency:      d.Currency,
		BaseDay:       d.BaseDay,
		Amount:        d.Amount,
		UpdatedAt:     d.UpdatedAt,
	}
}
