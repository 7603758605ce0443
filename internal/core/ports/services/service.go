package services

import (
	"context"
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	CashBalance CashBalanceSvc
	Cashflow    CashflowSvc
	Asset       AssetSvc
	CashInOut   CashInOutSvcFacade
	Batch       BatchSvc
	Calendar    BusinessCalendar
}

// Clock supplies the business day the ledger operates under.
type Clock interface {
	Today() time.Time
	Now() domain.TimePoint
	PlusBusinessDays(day time.Time, n int) time.Time
}

// BusinessCalendar is a Clock whose business day can be moved forward.
type BusinessCalendar interface {
	Clock
	Advance(ctx context.Context) time.Time
}

// Notifier informs account holders. It is called after commit; its failure
// never undoes the financial write.
type Notifier interface {
	NotifyWithdrawal(ctx context.Context, cio domain.CashInOut) error
}
