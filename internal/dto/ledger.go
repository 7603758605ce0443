package dto

import (
	"time"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/SscSPs/cash_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResponse is an account's current cash balance in one currency.
type BalanceResponse struct {
	AccountID string          `json:"accountId"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	BaseDay   string          `json:"baseDay"`
}

// ToBalanceResponse converts a domain.CashBalance.
func ToBalanceResponse(b domain.CashBalance) BalanceResponse {
	return BalanceResponse{
		AccountID: b.AccountID,
		Currency:  b.Currency,
		Amount:    b.Amount,
		BaseDay:   b.BaseDay.Format(domain.DayLayout),
	}
}

// BusinessDayResponse reports the current business day.
type BusinessDayResponse struct {
	BusinessDay string `json:"businessDay"`
}

// ToBusinessDayResponse formats day.
func ToBusinessDayResponse(day time.Time) BusinessDayResponse {
	return BusinessDayResponse{BusinessDay: day.Format(domain.DayLayout)}
}

// ItemOutcomeResponse reports one batch item.
type ItemOutcomeResponse struct {
	ID              string `json:"id"`
	AccountID       string `json:"accountId"`
	Kind            string `json:"kind"`
	Message         string `json:"message,omitempty"`
	RecoveryMessage string `json:"recoveryMessage,omitempty"`
}

// BatchReportResponse is the result of one batch pass.
type BatchReportResponse struct {
	Job         string                `json:"job"`
	BusinessDay string                `json:"businessDay"`
	Processed   int                   `json:"processed"`
	Recovered   int                   `json:"recovered"`
	DoubleFault int                   `json:"doubleFault"`
	Outcomes    []ItemOutcomeResponse `json:"outcomes"`
}

// ToBatchReportResponse converts a domain.BatchReport.
func ToBatchReportResponse(r domain.BatchReport) BatchReportResponse {
	outcomes := make([]ItemOutcomeResponse, len(r.Outcomes))
	for i, o := range r.Outcomes {
		outcomes[i] = ItemOutcomeResponse{
			ID:              o.ID,
			AccountID:       o.AccountID,
			Kind:            string(o.Kind),
			Message:         o.Message,
			RecoveryMessage: o.RecoveryMessage,
		}
	}
	return BatchReportResponse{
		Job:         r.Job,
		BusinessDay: r.BusinessDay.Format(domain.DayLayout),
		Processed:   r.Count(domain.OutcomeProcessed),
		Recovered:   r.Count(domain.OutcomeRecovered),
		DoubleFault: r.Count(domain.OutcomeDoubleFault),
		Outcomes:    outcomes,
	}
}

// ErrorResponse is the body of every failed request. Warns is set for validation failures.
type ErrorResponse struct {
	Error string           `json:"error"`
	Warns []apperrors.Warn `json:"warns,omitempty"`
}
