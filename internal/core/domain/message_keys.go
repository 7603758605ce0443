package domain

// Validation message keys. They are resolved to text outside the core.
const (
	ErrKeyAbsAmountZero    = "error.domain.AbsAmount.zero"
	ErrKeyStatusProcessing = "error.ActionStatusType.processing"

	ErrKeyCashflowRealizeDay      = "error.Cashflow.realizeDay"
	ErrKeyCashflowBeforeEqualsDay = "error.Cashflow.beforeEqualsDay"

	ErrKeyCIOWithdrawalAmount        = "error.CashInOut.withdrawAmount"
	ErrKeyCIOEventDayAfterEqualsDay  = "error.CashInOut.afterEqualsDay"
	ErrKeyCIOEventDayBeforeEqualsDay = "error.CashInOut.beforeEqualsDay"
	ErrKeyCIOAccountMismatch         = "error.CashInOut.accountMismatch"
)
