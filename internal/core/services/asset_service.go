package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
	"github.com/SscSPs/cash_ledger/internal/utils/calculator"
	"github.com/shopspring/decimal"
)

type assetService struct {
	BaseService
	balances  portssvc.CashBalanceSvc
	cashflows portssvc.CashflowSvc
}

// NewAssetService creates the availability calculator.
func NewAssetService(balances portssvc.CashBalanceSvc, cashflows portssvc.CashflowSvc) portssvc.AssetSvc {
	return &assetService{balances: balances, cashflows: cashflows}
}

var _ portssvc.AssetSvc = (*assetService)(nil)

// CanWithdraw computes
//
//	balance + Σ unrealized cashflows (value day <= valueDay)
//	        - Σ pending outgoing requests - absAmount >= 0
func (s *assetService) CanWithdraw(ctx context.Context, store portsrepo.Store, accountID, currency string, absAmount decimal.Decimal, valueDay time.Time) (bool, error) {
	balance, err := s.balances.GetOrCreate(ctx, store, accountID, currency)
	if err != nil {
		return false, err
	}
	total := calculator.Of(balance.Amount)

	unrealized, err := s.cashflows.FindUnrealized(ctx, store, accountID, currency, valueDay)
	if err != nil {
		return false, fmt.Errorf("failed to find unrealized cashflows: %w", err)
	}
	for _, cf := range unrealized {
		total.Add(cf.Amount)
	}

	pending, err := store.CashInOuts().FindUnprocessedByAccountCurrency(ctx, accountID, currency, true)
	if err != nil {
		return false, fmt.Errorf("failed to find pending withdrawals: %w", err)
	}
	for _, cio := range pending {
		total.Sub(cio.AbsAmount)
	}

	available := total.Sub(absAmount).Decimal()
	s.LogDebug(ctx, "Withdrawal availability computed",
		slog.String("account_id", accountID),
		slog.String("currency", currency),
		slog.String("remaining", available.String()),
		slog.String("value_day", valueDay.Format(domain.DayLayout)))
	return !available.IsNegative(), nil
}
