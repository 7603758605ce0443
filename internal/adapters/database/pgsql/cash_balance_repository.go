package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cash_ledger/internal/models"
	"github.com/jackc/pgx/v5"
)

type PgxCashBalanceRepository struct {
	BaseRepository
}

var _ portsrepo.CashBalanceRepository = (*PgxCashBalanceRepository)(nil)

const cashBalanceColumns = `cash_balance_id, account_id, currency, base_day, amount, updated_at`

func scanCashBalance(row pgx.Row) (*domain.CashBalance, error) {
	var m models.CashBalance
	err := row.Scan(
		&m.CashBalanceID,
		&m.AccountID,
		&m.Currency,
		&m.BaseDay,
		&m.Amount,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d := m.ToDomain()
	return &d, nil
}

// FindCashBalance retrieves the balance row for exactly baseDay.
func (r *PgxCashBalanceRepository) FindCashBalance(ctx context.Context, accountID, currency string, baseDay time.Time) (*domain.CashBalance, error) {
	query := `SELECT ` + cashBalanceColumns + `
		FROM cash_balances
		WHERE account_id = $1 AND currency = $2 AND base_day = $3;`

	b, err := scanCashBalance(r.db.QueryRow(ctx, query, accountID, currency, domain.DateOf(baseDay)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cash balance for account "+accountID, err)
	}
	return b, nil
}

// FindLatestCashBalance retrieves the row with the greatest base day.
func (r *PgxCashBalanceRepository) FindLatestCashBalance(ctx context.Context, accountID, currency string) (*domain.CashBalance, error) {
	query := `SELECT ` + cashBalanceColumns + `
		FROM cash_balances
		WHERE account_id = $1 AND currency = $2
		ORDER BY base_day DESC
		LIMIT 1;`

	b, err := scanCashBalance(r.db.QueryRow(ctx, query, accountID, currency))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest cash balance for account "+accountID, err)
	}
	return b, nil
}

// SaveCashBalance inserts a new balance row.
func (r *PgxCashBalanceRepository) SaveCashBalance(ctx context.Context, balance domain.CashBalance) error {
	m := models.FromDomainCashBalance(balance)
	query := `
		INSERT INTO cash_balances (` + cashBalanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);`

	_, err := r.db.Exec(ctx, query,
		m.CashBalanceID,
		m.AccountID,
		m.Currency,
		m.BaseDay,
		m.Amount,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cash balance %s/%s: %w", m.AccountID, m.Currency, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save cash balance "+m.CashBalanceID, err)
	}
	return nil
}

// UpdateCashBalance updates the amount of an existing row.
func (r *PgxCashBalanceRepository) UpdateCashBalance(ctx context.Context, balance domain.CashBalance) error {
	query := `
		UPDATE cash_balances
		SET amount = $1, updated_at = $2
		WHERE cash_balance_id = $3;`

	tag, err := r.db.Exec(ctx, query, balance.Amount, balance.UpdatedAt, balance.CashBalanceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cash balance "+balance.CashBalanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
