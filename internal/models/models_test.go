package models

import (
	"testing"
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCashInOut_NullableCashflowID(t *testing.T) {
	day := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	d := domain.CashInOut{CashInOutID: "c1", AbsAmount: decimal.NewFromInt(1), EventDay: day, Status: domain.StatusUnprocessed}

	m := FromDomainCashInOut(d)
	assert.False(t, m.CashflowID.Valid)
	assert.Nil(t, m.ToDomain().CashflowID)

	id := "cf-1"
	d.CashflowID = &id
	d.Status = domain.StatusProcessed
	m = FromDomainCashInOut(d)
	assert.True(t, m.CashflowID.Valid)
	back := m.ToDomain()
	if assert.NotNil(t, back.CashflowID) {
		assert.Equal(t, "cf-1", *back.CashflowID)
	}
	assert.Equal(t, domain.StatusProcessed, back.Status)
}

func TestCashflow_DaysNormalised(t *testing.T) {
	m := Cashflow{
		CashflowID: "f1",
		Kind:       string(domain.CashOut),
		ValueDay:   time.Date(2024, 4, 4, 0, 0, 0, 0, time.FixedZone("x", 3600)),
		Status:     string(domain.StatusUnprocessed),
	}
	d := m.ToDomain()
	assert.Equal(t, domain.CashOut, d.Kind)
	assert.Equal(t, time.UTC, d.ValueDay.Location())
}
