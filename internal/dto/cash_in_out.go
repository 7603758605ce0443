package dto

import (
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// WithdrawRequest is submitted by an account holder. The account is taken from the token.
type WithdrawRequest struct {
	Currency      string          `json:"currency" binding:"required,len=3,alpha"`
	AbsAmount     decimal.Decimal `json:"absAmount" swaggertype:"string" example:"100.00"`
	TargetBankRef string          `json:"targetBankRef" binding:"omitempty,max=64"`
}

// ToReg converts the request for accountID.
func (r WithdrawRequest) ToReg(accountID string) domain.RegCashInOut {
	return domain.RegCashInOut{
		AccountID:     accountID,
		Currency:      r.Currency,
		AbsAmount:     r.AbsAmount,
		Withdrawal:    true,
		TargetBankRef: r.TargetBankRef,
	}
}

// DepositRequest is registered by an operator on behalf of an account.
type DepositRequest struct {
	AccountID     string          `json:"accountId" binding:"required,max=64"`
	Currency      string          `json:"currency" binding:"required,len=3,alpha"`
	AbsAmount     decimal.Decimal `json:"absAmount" swaggertype:"string" example:"100.00"`
	TargetBankRef string          `json:"targetBankRef" binding:"omitempty,max=64"`
}

// ToReg converts the request.
func (r DepositRequest) ToReg() domain.RegCashInOut {
	return domain.RegCashInOut{
		AccountID:     r.AccountID,
		Currency:      r.Currency,
		AbsAmount:     r.AbsAmount,
		TargetBankRef: r.TargetBankRef,
	}
}

// IDResponse carries the identifier of a created record.
type IDResponse struct {
	ID string `json:"id"`
}

// CashInOutResponse is the API view of a cash-in-out request.
type CashInOutResponse struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"accountId"`
	Currency      string          `json:"currency"`
	AbsAmount     decimal.Decimal `json:"absAmount" swaggertype:"string"`
	Withdrawal    bool            `json:"withdrawal"`
	RequestDay    string          `json:"requestDay"`
	EventDay      string          `json:"eventDay"`
	ValueDay      string          `json:"valueDay"`
	TargetBankRef string          `json:"targetBankRef,omitempty"`
	SelfBankRef   string          `json:"selfBankRef"`
	Status        string          `json:"status"`
	CashflowID    *string         `json:"cashflowId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToCashInOutResponse converts a domain.CashInOut to its response DTO.
func ToCashInOutResponse(cio domain.CashInOut) CashInOutResponse {
	return CashInOutResponse{
		ID:            cio.CashInOutID,
		AccountID:     cio.AccountID,
		Currency:      cio.Currency,
		AbsAmount:     cio.AbsAmount,
		Withdrawal:    cio.Withdrawal,
		RequestDay:    cio.RequestDay.Format(domain.DayLayout),
		EventDay:      cio.EventDay.Format(domain.DayLayout),
		ValueDay:      cio.ValueDay.Format(domain.DayLayout),
		TargetBankRef: cio.TargetBankRef,
		SelfBankRef:   cio.SelfBankRef,
		Status:        string(cio.Status),
		CashflowID:    cio.CashflowID,
		CreatedAt:     cio.CreatedAt,
		CreatedBy:     cio.CreatedBy,
		LastUpdatedAt: cio.LastUpdatedAt,
		LastUpdatedBy: cio.LastUpdatedBy,
	}
}

// ToCashInOutResponses converts a slice, never returning nil.
func ToCashInOutResponses(cios []domain.CashInOut) []CashInOutResponse {
	res := make([]CashInOutResponse, len(cios))
	for i, cio := range cios {
		res[i] = ToCashInOutResponse(cio)
	}
	return res
}

// SearchCashInOutParams are the query parameters of the reporting search.
type SearchCashInOutParams struct {
	Currency    string     `form:"currency" binding:"omitempty,len=3,alpha"`
	Status      []string   `form:"status" binding:"omitempty,dive,oneof=UNPROCESSED PROCESSING PROCESSED CANCELLED ERROR"`
	UpdatedFrom *time.Time `form:"updatedFrom" time_format:"2006-01-02T15:04:05Z07:00"`
	UpdatedTo   *time.Time `form:"updatedTo" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit       int        `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken   *string    `form:"nextToken"`
}

// ToCriteria converts the parameters to repository search criteria.
func (p SearchCashInOutParams) ToCriteria() portsrepo.FindCashInOut {
	criteria := portsrepo.FindCashInOut{
		Currency:  p.Currency,
		Limit:     p.Limit,
		NextToken: p.NextToken,
	}
	for _, s := range p.Status {
		criteria.Statuses = append(criteria.Statuses, domain.ActionStatus(s))
	}
	if p.UpdatedFrom != nil {
		criteria.UpdatedFrom = *p.UpdatedFrom
	}
	if p.UpdatedTo != nil {
		criteria.UpdatedTo = *p.UpdatedTo
	}
	return criteria
}

// ListCashInOutResponse is one page of search results.
type ListCashInOutResponse struct {
	Items     []CashInOutResponse `json:"items"`
	NextToken *string             `json:"nextToken,omitempty"`
}
