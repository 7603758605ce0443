package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
	"github.com/SscSPs/cash_ledger/internal/platform/lock"
	"github.com/shopspring/decimal"
)

type cashBalanceService struct {
	BaseService
	locks  *lock.Registry
	reader portsrepo.Store
	clock  portssvc.Clock
	newID  IDGenerator
}

// CashBalanceOption configures the cash balance service
type CashBalanceOption func(*cashBalanceService)

// WithCashBalanceIDs overrides the ID generator
func WithCashBalanceIDs(gen IDGenerator) CashBalanceOption {
	return func(s *cashBalanceService) {
		s.newID = gen
	}
}

// NewCashBalanceService creates the ledger service.
func NewCashBalanceService(locks *lock.Registry, reader portsrepo.Store, clock portssvc.Clock, options ...CashBalanceOption) portssvc.CashBalanceSvc {
	svc := &cashBalanceService{
		locks:  locks,
		reader: reader,
		clock:  clock,
		newID:  NewUUID,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CashBalanceSvc = (*cashBalanceService)(nil)

func (s *cashBalanceService) GetOrCreate(ctx context.Context, store portsrepo.Store, accountID, currency string) (*domain.CashBalance, error) {
	now := s.clock.Now()
	repo := store.CashBalances()

	balance, err := repo.FindCashBalance(ctx, accountID, currency, now.Day)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find cash balance: %w", err)
	}

	carried := decimal.Zero
	latest, err := repo.FindLatestCashBalance(ctx, accountID, currency)
	switch {
	case err == nil:
		carried = latest.Amount
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to find latest cash balance: %w", err)
	}

	created := domain.NewCashBalance(s.newID(), accountID, currency, carried, now)
	if err := repo.SaveCashBalance(ctx, created); err != nil {
		s.LogError(ctx, err, "Failed to roll cash balance forward",
			slog.String("account_id", accountID), slog.String("currency", currency))
		return nil, fmt.Errorf("failed to save cash balance: %w", err)
	}
	s.LogDebug(ctx, "Cash balance rolled forward",
		slog.String("account_id", accountID),
		slog.String("currency", currency),
		slog.String("amount", created.Amount.String()))
	return &created, nil
}

func (s *cashBalanceService) ApplyDelta(ctx context.Context, store portsrepo.Store, balance *domain.CashBalance, delta decimal.Decimal) (*domain.CashBalance, error) {
	updated := *balance
	updated.Add(delta, s.clock.Now().Date)
	if err := store.CashBalances().UpdateCashBalance(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update cash balance %s: %w", balance.CashBalanceID, err)
	}
	return &updated, nil
}

func (s *cashBalanceService) Balance(ctx context.Context, accountID, currency string) (*domain.CashBalance, error) {
	return lock.Call(s.locks, accountID, lock.Read, func() (*domain.CashBalance, error) {
		now := s.clock.Now()
		latest, err := s.reader.CashBalances().FindLatestCashBalance(ctx, accountID, currency)
		if errors.Is(err, apperrors.ErrNotFound) {
			zero := domain.NewCashBalance("", accountID, currency, decimal.Zero, now)
			return &zero, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to find latest cash balance: %w", err)
		}
		if latest.BaseDay.Before(now.Day) {
			view := *latest
			view.BaseDay = now.Day
			return &view, nil
		}
		return latest, nil
	})
}
