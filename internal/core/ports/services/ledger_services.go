package services

import (
	"context"
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// CashBalanceSvc maintains daily cash balances. Methods taking a store must run
// inside the caller's write-locked unit of work.
type CashBalanceSvc interface {
	// GetOrCreate returns today's balance row, rolling the latest prior row forward
	// (or starting at zero) when today's row does not exist yet.
	GetOrCreate(ctx context.Context, store portsrepo.Store, accountID, currency string) (*domain.CashBalance, error)

	// ApplyDelta adds delta to balance, truncating once to the currency scale, and persists it.
	ApplyDelta(ctx context.Context, store portsrepo.Store, balance *domain.CashBalance, delta decimal.Decimal) (*domain.CashBalance, error)

	// Balance returns the current balance under a read lock without persisting a roll-forward.
	Balance(ctx context.Context, accountID, currency string) (*domain.CashBalance, error)
}

// CashflowSvc drives the cashflow state machine.
type CashflowSvc interface {
	// Register creates an unprocessed cashflow and realizes it at once when its
	// value day has already been reached.
	Register(ctx context.Context, store portsrepo.Store, actor domain.Actor, req domain.RegCashflow) (*domain.Cashflow, error)

	// Realize marks the cashflow processed and applies its amount to the cash balance.
	Realize(ctx context.Context, store portsrepo.Store, actor domain.Actor, cf *domain.Cashflow) (*domain.Cashflow, error)

	// Error demotes an unprocessed cashflow.
	Error(ctx context.Context, store portsrepo.Store, actor domain.Actor, cf *domain.Cashflow) (*domain.Cashflow, error)

	FindDoRealize(ctx context.Context, store portsrepo.Store, valueDay time.Time) ([]domain.Cashflow, error)

	FindUnrealized(ctx context.Context, store portsrepo.Store, accountID, currency string, valueDay time.Time) ([]domain.Cashflow, error)
}

// AssetSvc answers funds-availability questions.
type AssetSvc interface {
	// CanWithdraw reports whether absAmount can be withdrawn with value day valueDay.
	// Call it inside the write-locked transaction that creates the request.
	CanWithdraw(ctx context.Context, store portsrepo.Store, accountID, currency string, absAmount decimal.Decimal, valueDay time.Time) (bool, error)
}
