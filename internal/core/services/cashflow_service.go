package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
)

type cashflowService struct {
	BaseService
	balances portssvc.CashBalanceSvc
	clock    portssvc.Clock
	newID    IDGenerator
}

// CashflowOption configures the cashflow service
type CashflowOption func(*cashflowService)

// WithCashflowIDs overrides the ID generator
func WithCashflowIDs(gen IDGenerator) CashflowOption {
	return func(s *cashflowService) {
		s.newID = gen
	}
}

// NewCashflowService creates the cashflow service.
func NewCashflowService(balances portssvc.CashBalanceSvc, clock portssvc.Clock, options ...CashflowOption) portssvc.CashflowSvc {
	svc := &cashflowService{
		balances: balances,
		clock:    clock,
		newID:    NewUUID,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CashflowSvc = (*cashflowService)(nil)

func (s *cashflowService) Register(ctx context.Context, store portsrepo.Store, actor domain.Actor, req domain.RegCashflow) (*domain.Cashflow, error) {
	now := s.clock.Now()
	if err := req.Validate(now); err != nil {
		s.LogWarn(ctx, err, "Cashflow registration rejected", slog.String("account_id", req.AccountID))
		return nil, err
	}

	cf := req.Create(s.newID(), now, actor)
	if err := store.Cashflows().SaveCashflow(ctx, cf); err != nil {
		s.LogError(ctx, err, "Failed to save cashflow", slog.String("cashflow_id", cf.CashflowID))
		return nil, fmt.Errorf("failed to save cashflow: %w", err)
	}
	s.LogInfo(ctx, "Cashflow registered",
		slog.String("cashflow_id", cf.CashflowID),
		slog.String("account_id", cf.AccountID),
		slog.String("amount", cf.Amount.String()),
		slog.String("value_day", cf.ValueDay.Format(domain.DayLayout)))

	// Second transition in the same unit of work; the account lock keeps it private.
	if cf.CanRealize(now) {
		return s.Realize(ctx, store, actor, &cf)
	}
	return &cf, nil
}

func (s *cashflowService) Realize(ctx context.Context, store portsrepo.Store, actor domain.Actor, cf *domain.Cashflow) (*domain.Cashflow, error) {
	now := s.clock.Now()
	realized := *cf
	if err := realized.Realize(now, actor); err != nil {
		s.LogWarn(ctx, err, "Cashflow realization rejected", slog.String("cashflow_id", cf.CashflowID))
		return nil, err
	}
	if err := store.Cashflows().UpdateCashflow(ctx, realized); err != nil {
		return nil, fmt.Errorf("failed to update cashflow %s: %w", cf.CashflowID, err)
	}

	balance, err := s.balances.GetOrCreate(ctx, store, realized.AccountID, realized.Currency)
	if err != nil {
		return nil, err
	}
	balance, err = s.balances.ApplyDelta(ctx, store, balance, realized.Amount)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Cashflow realized",
		slog.String("cashflow_id", realized.CashflowID),
		slog.String("account_id", realized.AccountID),
		slog.String("balance", balance.Amount.String()))
	return &realized, nil
}

func (s *cashflowService) Error(ctx context.Context, store portsrepo.Store, actor domain.Actor, cf *domain.Cashflow) (*domain.Cashflow, error) {
	failed := *cf
	if err := failed.Error(s.clock.Now(), actor); err != nil {
		return nil, err
	}
	if err := store.Cashflows().UpdateCashflow(ctx, failed); err != nil {
		return nil, fmt.Errorf("failed to update cashflow %s: %w", cf.CashflowID, err)
	}
	return &failed, nil
}

func (s *cashflowService) FindDoRealize(ctx context.Context, store portsrepo.Store, valueDay time.Time) ([]domain.Cashflow, error) {
	return store.Cashflows().FindDoRealizeCashflows(ctx, valueDay)
}

func (s *cashflowService) FindUnrealized(ctx context.Context, store portsrepo.Store, accountID, currency string, valueDay time.Time) ([]domain.Cashflow, error) {
	return store.Cashflows().FindUnrealizedCashflows(ctx, accountID, currency, valueDay)
}
