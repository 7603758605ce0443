package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
	"github.com/SscSPs/cash_ledger/internal/middleware"
	"github.com/SscSPs/cash_ledger/internal/platform/audit"
	"github.com/SscSPs/cash_ledger/internal/platform/config"
	"github.com/SscSPs/cash_ledger/internal/platform/lock"
	"github.com/SscSPs/cash_ledger/internal/platform/txscope"
	"github.com/shopspring/decimal"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, scope *txscope.Scope, calendar portssvc.BusinessCalendar, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	auditor := audit.New()

	container := &portssvc.ServiceContainer{Calendar: calendar}

	container.CashBalance = NewCashBalanceService(scope.Locks(), repos.Reader, calendar)
	container.Cashflow = NewCashflowService(container.CashBalance, calendar)
	container.Asset = NewAssetService(container.CashBalance, container.Cashflow)
	container.CashInOut = NewCashInOutService(
		scope,
		repos.Reader,
		calendar,
		container.Asset,
		container.Cashflow,
		WithNotifier(notifier),
		WithCashInOutAuditor(auditor),
		WithSelfBankRef(cfg.SelfBankRef),
		WithWithdrawOffsets(cfg.WithdrawEventOffset, cfg.WithdrawValueOffset),
	)
	container.Batch = NewBatchService(scope, repos.Reader, calendar, container.CashInOut, container.Cashflow,
		WithBatchAuditor(auditor))

	return container
}

// SeedOpeningBalances registers one CASH_IN cashflow per "account:currency" entry,
// value-dated today so it is realized into the balance at once. An account and
// currency that already has a balance row is left alone, so restarts do not
// credit it again.
func SeedOpeningBalances(ctx context.Context, scope *txscope.Scope, cashflows portssvc.CashflowSvc, calendar portssvc.Clock, balances map[string]decimal.Decimal) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	for key, amount := range balances {
		accountID, currency, _ := strings.Cut(key, ":")
		req := domain.RegCashflow{
			AccountID: accountID,
			Currency:  strings.ToUpper(currency),
			Amount:    amount,
			Kind:      domain.CashIn,
			Remark:    domain.RemarkDeposit,
			ValueDay:  calendar.Today(),
		}
		seeded := false
		err := scope.RunLocked(ctx, accountID, lock.Write, func(ctx context.Context, store portsrepo.Store) error {
			_, err := store.CashBalances().FindLatestCashBalance(ctx, req.AccountID, req.Currency)
			if err == nil {
				return nil
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			if _, err := cashflows.Register(ctx, store, domain.SystemActor, req); err != nil {
				return err
			}
			seeded = true
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to seed balance %s: %w", key, err)
		}
		if !seeded {
			logger.Info("Opening balance already present, skipping",
				slog.String("account_id", accountID), slog.String("currency", req.Currency))
			continue
		}
		logger.Info("Opening balance seeded",
			slog.String("account_id", accountID), slog.String("amount", amount.String()))
	}
	return nil
}
