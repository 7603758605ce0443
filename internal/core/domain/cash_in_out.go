package domain

import (
	"time"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CashInOut is a customer's withdrawal (or deposit) instruction before it becomes
// a Cashflow. CashflowID is set if and only if Status is processed.
type CashInOut struct {
	CashInOutID   string          `json:"cashInOutID"`
	AccountID     string          `json:"accountID"`
	Currency      string          `json:"currency"`
	AbsAmount     decimal.Decimal `json:"absAmount"`
	Withdrawal    bool            `json:"withdrawal"`
	RequestDay    time.Time       `json:"requestDay"`
	RequestDate   time.Time       `json:"requestDate"`
	EventDay      time.Time       `json:"eventDay"`
	ValueDay      time.Time       `json:"valueDay"`
	TargetBankRef string          `json:"targetBankRef"`
	SelfBankRef   string          `json:"selfBankRef"`
	Status        ActionStatus    `json:"status"`
	CashflowID    *string         `json:"cashflowID,omitempty"`
	AuditFields
}

// RegCashInOut is a request to create a CashInOut.
type RegCashInOut struct {
	AccountID     string
	Currency      string
	AbsAmount     decimal.Decimal
	Withdrawal    bool
	TargetBankRef string
}

// Validate checks field-level rules.
func (p RegCashInOut) Validate() error {
	return apperrors.Validate(func(v *apperrors.Validator) {
		v.CheckField(p.AbsAmount.IsPositive(), "absAmount", ErrKeyAbsAmountZero)
	})
}

// Create builds an unprocessed CashInOut.
func (p RegCashInOut) Create(id string, now TimePoint, eventDay, valueDay time.Time, selfBankRef string, actor Actor) CashInOut {
	cio := CashInOut{
		CashInOutID:   id,
		AccountID:     p.AccountID,
		Currency:      p.Currency,
		AbsAmount:     p.AbsAmount,
		Withdrawal:    p.Withdrawal,
		RequestDay:    now.Day,
		RequestDate:   now.Date,
		EventDay:      DateOf(eventDay),
		ValueDay:      DateOf(valueDay),
		TargetBankRef: p.TargetBankRef,
		SelfBankRef:   selfBankRef,
		Status:        StatusUnprocessed,
	}
	cio.stamp(actor, now.Date)
	return cio
}

// SignedAmount is negative for withdrawals.
func (c CashInOut) SignedAmount() decimal.Decimal {
	if c.Withdrawal {
		return c.AbsAmount.Neg()
	}
	return c.AbsAmount
}

// NewCashflowRequest derives the cashflow spawned when the request is processed.
func (c CashInOut) NewCashflowRequest() RegCashflow {
	kind, remark := CashIn, RemarkDeposit
	if c.Withdrawal {
		kind, remark = CashOut, RemarkWithdrawal
	}
	eventDay := c.EventDay
	return RegCashflow{
		AccountID: c.AccountID,
		Currency:  c.Currency,
		Amount:    c.SignedAmount(),
		Kind:      kind,
		Remark:    remark,
		EventDay:  &eventDay,
		ValueDay:  c.ValueDay,
	}
}

// ValidateProcess checks that the request may be processed now.
func (c CashInOut) ValidateProcess(now TimePoint) error {
	return apperrors.Validate(func(v *apperrors.Validator) {
		v.Verify(c.Status.IsUnprocessing(), ErrKeyStatusProcessing)
		v.Verify(now.AfterEqualsDay(c.EventDay), ErrKeyCIOEventDayAfterEqualsDay)
	})
}

// MarkProcessed records the spawned cashflow. Call ValidateProcess first.
func (c *CashInOut) MarkProcessed(cashflowID string, now TimePoint, actor Actor) {
	c.Status = StatusProcessed
	c.CashflowID = &cashflowID
	c.stamp(actor, now.Date)
}

// Cancel withdraws the request while its event day is still in the future.
func (c *CashInOut) Cancel(now TimePoint, actor Actor) error {
	err := apperrors.Validate(func(v *apperrors.Validator) {
		v.Verify(c.Status.IsUnprocessing(), ErrKeyStatusProcessing)
		v.Verify(now.BeforeDay(c.EventDay), ErrKeyCIOEventDayBeforeEqualsDay)
	})
	if err != nil {
		return err
	}
	c.Status = StatusCancelled
	c.stamp(actor, now.Date)
	return nil
}

// Error demotes an unprocessed request to error.
func (c *CashInOut) Error(now TimePoint, actor Actor) error {
	if c.Status != StatusUnprocessed {
		return apperrors.NewValidationError(ErrKeyStatusProcessing)
	}
	c.Status = StatusError
	c.stamp(actor, now.Date)
	return nil
}
