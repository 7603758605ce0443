package models

import (
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Cashflow is a row of cashflows.
type Cashflow struct {
	CashflowID string          `db:"cashflow_id"`
	AccountID  string          `db:"account_id"`
	Currency   string          `db:"currency"`
	Amount     decimal.Decimal `db:"amount"`
	Kind       string          `db:"kind"`
	Remark     string          `db:"remark"`
	EventDay   time.Time       `db:"event_day"`
	EventDate  time.Time       `db:"event_date"`
	ValueDay   time.Time       `db:"value_day"`
	Status     string          `db:"status"`
	AuditFields
}

func (m Cashflow) ToDomain() domain.Cashflow {
	return domain.Cashflow{
		CashflowID: m.CashflowID,
		AccountID:  m.AccountID,
		Currency:   m.Currency,
		Amount:     m.Amount,
		Kind:       domain.CashflowKind(m.Kind),
		Remark:     m.Remark,
		EventDay:   domain.DateOf(m.EventDay),
		EventDate:  m.EventDate,
		ValueDay:   domain.DateOf(m.ValueDay),
		Status:     domain.ActionStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func FromDomainCashflow(d domain.Cashflow) Cashflow {
	return Cashflow{
		CashflowID: d.CashflowID,
		AccountID:  d.AccountID,
		Currency:   d.Currency,
		Amount:     d.Amount,
		Kind:       string(d.Kind),
		Remark:     d.Remark,
		EventDay:   d.EventDay,
		EventDate:  d.EventDate,
		ValueDay:   d.ValueDay,
		Status:     string(d.Status),
		AuditFields: AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}
