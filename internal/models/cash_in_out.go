package models

import (
	"database/sql"
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashInOut is a row of cash_in_outs. CashflowID is NULL until processed.
type CashInOut struct {
	CashInOutID   string          `db:"cash_in_out_id"`
	AccountID     string          `db:"account_id"`
	Currency      string          `db:"currency"`
	AbsAmount     decimal.Decimal `db:"abs_amount"`
	Withdrawal    bool            `db:"withdrawal"`
	RequestDay    time.Time       `db:"request_day"`
	RequestDate   time.Time       `db:"request_date"`
	EventDay      time.Time       `db:"event_day"`
	ValueDay      time.Time       `db:"value_day"`
	TargetBankRef string          `db:"target_bank_ref"`
	SelfBankRef   string          `db:"self_bank_ref"`
	Status        string          `db:"status"`
	CashflowID    sql.NullString  `db:"cashflow_id"`
	AuditFields
}

func (m CashInOut) ToDomain() domain.CashInOut {
	d := domain.CashInOut{
		CashInOutID:   m.CashInOutID,
		AccountID:     m.AccountID,
		Currency:      m.Currency,
		AbsAmount:     m.AbsAmount,
		Withdrawal:    m.Withdrawal,
		RequestDay:    domain.DateOf(m.RequestDay),
		RequestDate:   m.RequestDate,
		EventDay:      domain.DateOf(m.EventDay),
		ValueDay:      domain.DateOf(m.ValueDay),
		TargetBankRef: m.TargetBankRef,
		SelfBankRef:   m.SelfBankRef,
		Status:        domain.ActionStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.CashflowID.Valid {
		id := m.CashflowID.String
		d.CashflowID = &id
	}
	return d
}

func FromDomainCashInOut(d domain.CashInOut) CashInOut {
	m := CashInOut{
		CashInOutID:   d.CashInOutID,
		AccountID:     d.AccountID,
		Currency:      d.Currency,
		AbsAmount:     d.AbsAmount,
		Withdrawal:    d.Withdrawal,
		RequestDay:    d.RequestDay,
		RequestDate:   d.RequestDate,
		EventDay:      d.EventDay,
		ValueDay:      d.ValueDay,
		TargetBankRef: d.TargetBankRef,
		SelfBankRef:   d.SelfBankRef,
		Status:        string(d.Status),
		AuditFields: AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.CashflowID != nil {
		m.CashflowID = sql.NullString{String: *d.CashflowID, Valid: true}
	}
	return m
}
