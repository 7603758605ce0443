package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
)

// RepositoryProvider holds what services need to reach persistence.
// Reader serves lock-free queries outside any transaction.
type RepositoryProvider struct {
	TxManager TransactionManager
	Reader    Store
}

// CashBalanceRepository persists daily balance rows.
type CashBalanceRepository interface {
	// FindCashBalance returns the row for exactly baseDay, or apperrors.ErrNotFound.
	FindCashBalance(ctx context.Context, accountID, currency string, baseDay time.Time) (*domain.CashBalance, error)

	// FindLatestCashBalance returns the row with the greatest baseDay, or apperrors.ErrNotFound.
	FindLatestCashBalance(ctx context.Context, accountID, currency string) (*domain.CashBalance, error)

	// SaveCashBalance inserts a new row.
	SaveCashBalance(ctx context.Context, balance domain.CashBalance) error

	// UpdateCashBalance updates amount and updatedAt of an existing row.
	UpdateCashBalance(ctx context.Context, balance domain.CashBalance) error
}

// CashflowRepository persists cashflows.
type CashflowRepository interface {
	FindCashflowByID(ctx context.Context, cashflowID string) (*domain.Cashflow, error)

	SaveCashflow(ctx context.Context, cf domain.Cashflow) error

	UpdateCashflow(ctx context.Context, cf domain.Cashflow) error

	// FindDoRealizeCashflows returns not-yet-realized cashflows whose value day is valueDay.
	FindDoRealizeCashflows(ctx context.Context, valueDay time.Time) ([]domain.Cashflow, error)

	// FindUnrealizedCashflows returns not-yet-realized cashflows of an account and
	// currency whose value day is on or before valueDay.
	FindUnrealizedCashflows(ctx context.Context, accountID, currency string, valueDay time.Time) ([]domain.Cashflow, error)
}

// FindCashInOut is the reporting search over cash-in-out requests. Zero values
// leave a criterion out.
type FindCashInOut struct {
	Currency    string
	Statuses    []domain.ActionStatus
	UpdatedFrom time.Time
	UpdatedTo   time.Time
	Limit       int
	NextToken   *string
}

// CashInOutRepository persists cash-in-out requests.
type CashInOutRepository interface {
	FindCashInOutByID(ctx context.Context, cashInOutID string) (*domain.CashInOut, error)

	SaveCashInOut(ctx context.Context, cio domain.CashInOut) error

	UpdateCashInOut(ctx context.Context, cio domain.CashInOut) error

	// FindUnprocessedByEventDay returns every unprocessed request due on eventDay.
	FindUnprocessedByEventDay(ctx context.Context, eventDay time.Time) ([]domain.CashInOut, error)

	// FindUnprocessedByAccountCurrency returns unprocessed requests of one direction.
	FindUnprocessedByAccountCurrency(ctx context.Context, accountID, currency string, withdrawal bool) ([]domain.CashInOut, error)

	// FindUnprocessedByAccount returns unprocessed requests, most recently updated first.
	FindUnprocessedByAccount(ctx context.Context, accountID string) ([]domain.CashInOut, error)

	// FindCashInOuts runs the reporting search. It returns the page and a token for the next one.
	FindCashInOuts(ctx context.Context, criteria FindCashInOut) ([]domain.CashInOut, *string, error)
}
