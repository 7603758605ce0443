package services

import (
	"context"
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
)

// CashInOutRequesterSvc holds the customer and operator entry points. Each call
// runs in its own account-locked transaction.
type CashInOutRequesterSvc interface {
	// Withdraw registers a withdrawal after checking available funds.
	Withdraw(ctx context.Context, actor domain.Actor, req domain.RegCashInOut) (*domain.CashInOut, error)

	// Deposit registers an incoming transfer. No availability check applies.
	Deposit(ctx context.Context, actor domain.Actor, req domain.RegCashInOut) (*domain.CashInOut, error)

	// CancelWithdrawal cancels one of the actor's own pending requests.
	CancelWithdrawal(ctx context.Context, actor domain.Actor, cashInOutID string) (*domain.CashInOut, error)
}

// CashInOutProcessorSvc holds the state transitions used inside a caller's unit of work.
type CashInOutProcessorSvc interface {
	Process(ctx context.Context, store portsrepo.Store, actor domain.Actor, cio *domain.CashInOut) (*domain.CashInOut, error)

	Cancel(ctx context.Context, store portsrepo.Store, actor domain.Actor, cio *domain.CashInOut) (*domain.CashInOut, error)

	Error(ctx context.Context, store portsrepo.Store, actor domain.Actor, cio *domain.CashInOut) (*domain.CashInOut, error)

	FindDue(ctx context.Context, store portsrepo.Store, eventDay time.Time) ([]domain.CashInOut, error)
}

// CashInOutReaderSvc holds lock-free queries.
type CashInOutReaderSvc interface {
	// FindUnprocessed lists an account's pending requests, most recently updated first.
	FindUnprocessed(ctx context.Context, accountID string) ([]domain.CashInOut, error)

	// Search runs the reporting search.
	Search(ctx context.Context, criteria portsrepo.FindCashInOut) ([]domain.CashInOut, *string, error)
}

// CashInOutSvcFacade combines all cash-in-out service interfaces.
type CashInOutSvcFacade interface {
	CashInOutRequesterSvc
	CashInOutProcessorSvc
	CashInOutReaderSvc
}

// BatchSvc runs the daily passes. Each item is processed in its own locked
// transaction; failures are reported per item, never propagated.
type BatchSvc interface {
	// CloseCashOut processes every request due today.
	CloseCashOut(ctx context.Context, actor domain.Actor) (*domain.BatchReport, error)

	// RealizeCashflows realizes every cashflow whose value day is today.
	RealizeCashflows(ctx context.Context, actor domain.Actor) (*domain.BatchReport, error)

	// AdvanceDay moves the business day forward and returns it.
	AdvanceDay(ctx context.Context, actor domain.Actor) (time.Time, error)

	// RunDaily runs CloseCashOut, RealizeCashflows and AdvanceDay in order.
	RunDaily(ctx context.Context, actor domain.Actor) ([]domain.BatchReport, error)
}
