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

type PgxCashflowRepository struct {
	BaseRepository
}

var _ portsrepo.CashflowRepository = (*PgxCashflowRepository)(nil)

const cashflowColumns = `cashflow_id, account_id, currency, amount, kind, remark, event_day, event_date, value_day, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCashflow(row pgx.Row) (domain.Cashflow, error) {
	var m models.Cashflow
	err := row.Scan(
		&m.CashflowID,
		&m.AccountID,
		&m.Currency,
		&m.Amount,
		&m.Kind,
		&m.Remark,
		&m.EventDay,
		&m.EventDate,
		&m.ValueDay,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Cashflow{}, err
	}
	return m.ToDomain(), nil
}

// FindCashflowByID retrieves a cashflow by its ID.
func (r *PgxCashflowRepository) FindCashflowByID(ctx context.Context, cashflowID string) (*domain.Cashflow, error) {
	query := `SELECT ` + cashflowColumns + ` FROM cashflows WHERE cashflow_id = $1;`

	cf, err := scanCashflow(r.db.QueryRow(ctx, query, cashflowID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cashflow by ID "+cashflowID, err)
	}
	return &cf, nil
}

// SaveCashflow inserts a new cashflow.
func (r *PgxCashflowRepository) SaveCashflow(ctx context.Context, cf domain.Cashflow) error {
	m := models.FromDomainCashflow(cf)
	query := `
		INSERT INTO cashflows (` + cashflowColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`

	_, err := r.db.Exec(ctx, query,
		m.CashflowID,
		m.AccountID,
		m.Currency,
		m.Amount,
		m.Kind,
		m.Remark,
		m.EventDay,
		m.EventDate,
		m.ValueDay,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cashflow %s: %w", m.CashflowID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save cashflow "+m.CashflowID, err)
	}
	return nil
}

// UpdateCashflow persists a status transition.
func (r *PgxCashflowRepository) UpdateCashflow(ctx context.Context, cf domain.Cashflow) error {
	query := `
		UPDATE cashflows
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE cashflow_id = $4;`

	tag, err := r.db.Exec(ctx, query, string(cf.Status), cf.LastUpdatedAt, cf.LastUpdatedBy, cf.CashflowID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cashflow "+cf.CashflowID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindDoRealizeCashflows retrieves unprocessed cashflows whose value day is valueDay.
func (r *PgxCashflowRepository) FindDoRealizeCashflows(ctx context.Context, valueDay time.Time) ([]domain.Cashflow, error) {
	query := `SELECT ` + cashflowColumns + `
		FROM cashflows
		WHERE value_day = $1 AND status = ANY($2)
		ORDER BY created_at, cashflow_id;`
	return r.list(ctx, query, domain.DateOf(valueDay), statusStrings(domain.UnprocessedStatuses))
}

// FindUnrealizedCashflows retrieves unprocessed cashflows due on or before valueDay.
func (r *PgxCashflowRepository) FindUnrealizedCashflows(ctx context.Context, accountID, currency string, valueDay time.Time) ([]domain.Cashflow, error) {
	query := `SELECT ` + cashflowColumns + `
		FROM cashflows
		WHERE account_id = $1 AND currency = $2 AND value_day <= $3 AND status = ANY($4)
		ORDER BY created_at, cashflow_id;`
	return r.list(ctx, query, accountID, currency, domain.DateOf(valueDay), statusStrings(domain.UnprocessedStatuses))
}

func (r *PgxCashflowRepository) list(ctx context.Context, query string, args ...any) ([]domain.Cashflow, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cashflows", err)
	}
	defer rows.Close()

	cashflows := []domain.Cashflow{}
	for rows.Next() {
		cf, err := scanCashflow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cashflow row", err)
		}
		cashflows = append(cashflows, cf)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating cashflow rows", err)
	}
	return cashflows, nil
}

func statusStrings(statuses []domain.ActionStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
