package domain

import (
	"time"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CashflowKind classifies a cashflow.
type CashflowKind string

const (
	CashIn          CashflowKind = "CASH_IN"
	CashOut         CashflowKind = "CASH_OUT"
	CashTransferIn  CashflowKind = "CASH_TRANSFER_IN"
	CashTransferOut CashflowKind = "CASH_TRANSFER_OUT"
)

// Cashflow remarks.
const (
	RemarkDeposit    = "cashflow.deposit"
	RemarkWithdrawal = "cashflow.withdrawal"
)

const errKeyCashflowEventDayAfterValueDay = "error.Cashflow.eventDayAfterValueDay"

// Cashflow is a confirmed money movement that is realized into the cash balance
// on its value day. Amount is signed: negative for outgoing money.
type Cashflow struct {
	CashflowID string          `json:"cashflowID"`
	AccountID  string          `json:"accountID"`
	Currency   string          `json:"currency"`
	Amount     decimal.Decimal `json:"amount"`
	Kind       CashflowKind    `json:"kind"`
	Remark     string          `json:"remark"`
	EventDay   time.Time       `json:"eventDay"`
	EventDate  time.Time       `json:"eventDate"`
	ValueDay   time.Time       `json:"valueDay"`
	Status     ActionStatus    `json:"status"`
	AuditFields
}

// RegCashflow is the registration request for a cashflow. A nil EventDay means today.
type RegCashflow struct {
	AccountID string
	Currency  string
	Amount    decimal.Decimal
	Kind      CashflowKind
	Remark    string
	EventDay  *time.Time
	ValueDay  time.Time
}

// Validate checks the request against the current business day.
func (p RegCashflow) Validate(now TimePoint) error {
	eventDay := p.eventDay(now)
	return apperrors.Validate(func(v *apperrors.Validator) {
		v.CheckField(now.BeforeEqualsDay(p.ValueDay), "valueDay", ErrKeyCashflowBeforeEqualsDay)
		v.CheckField(!eventDay.After(DateOf(p.ValueDay)), "eventDay", errKeyCashflowEventDayAfterValueDay)
	})
}

// Create builds an unprocessed cashflow from the request.
func (p RegCashflow) Create(id string, now TimePoint, actor Actor) Cashflow {
	cf := Cashflow{
		CashflowID: id,
		AccountID:  p.AccountID,
		Currency:   p.Currency,
		Amount:     p.Amount,
		Kind:       p.Kind,
		Remark:     p.Remark,
		EventDay:   p.eventDay(now),
		EventDate:  now.Date,
		ValueDay:   DateOf(p.ValueDay),
		Status:     StatusUnprocessed,
	}
	cf.stamp(actor, now.Date)
	return cf
}

func (p RegCashflow) eventDay(now TimePoint) time.Time {
	if p.EventDay == nil {
		return now.Day
	}
	return DateOf(*p.EventDay)
}

// CanRealize reports whether the value day has been reached.
func (c Cashflow) CanRealize(now TimePoint) bool {
	return now.AfterEqualsDay(c.ValueDay)
}

// Realize marks the cashflow processed. The caller applies Amount to the cash balance
// in the same unit of work.
func (c *Cashflow) Realize(now TimePoint, actor Actor) error {
	err := apperrors.Validate(func(v *apperrors.Validator) {
		v.Verify(c.CanRealize(now), ErrKeyCashflowRealizeDay)
		v.Verify(c.Status.IsUnprocessing(), ErrKeyStatusProcessing)
	})
	if err != nil {
		return err
	}
	c.Status = StatusProcessed
	c.stamp(actor, now.Date)
	return nil
}

// Error demotes an unprocessed cashflow to error.
func (c *Cashflow) Error(now TimePoint, actor Actor) error {
	if c.Status != StatusUnprocessed {
		return apperrors.NewValidationError(ErrKeyStatusProcessing)
	}
	c.Status = StatusError
	c.stamp(actor, now.Date)
	return nil
}
