package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cash_ledger/internal/models"
	"github.com/SscSPs/cash_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const defaultPageSize = 20

type PgxCashInOutRepository struct {
	BaseRepository
}

var _ portsrepo.CashInOutRepository = (*PgxCashInOutRepository)(nil)

const cashInOutColumns = `cash_in_out_id, account_id, currency, abs_amount, withdrawal, request_day, request_date,
	event_day, value_day, target_bank_ref, self_bank_ref, status, cashflow_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCashInOut(row pgx.Row) (domain.CashInOut, error) {
	var m models.CashInOut
	err := row.Scan(
		&m.CashInOutID,
		&m.AccountID,
		&m.Currency,
		&m.AbsAmount,
		&m.Withdrawal,
		&m.RequestDay,
		&m.RequestDate,
		&m.EventDay,
		&m.ValueDay,
		&m.TargetBankRef,
		&m.SelfBankRef,
		&m.Status,
		&m.CashflowID, // Scan into NullString
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.CashInOut{}, err
	}
	return m.ToDomain(), nil
}

// FindCashInOutByID retrieves a cash-in-out request by its ID.
func (r *PgxCashInOutRepository) FindCashInOutByID(ctx context.Context, cashInOutID string) (*domain.CashInOut, error) {
	query := `SELECT ` + cashInOutColumns + ` FROM cash_in_outs WHERE cash_in_out_id = $1;`

	cio, err := scanCashInOut(r.db.QueryRow(ctx, query, cashInOutID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cash-in-out by ID "+cashInOutID, err)
	}
	return &cio, nil
}

// SaveCashInOut inserts a new request.
func (r *PgxCashInOutRepository) SaveCashInOut(ctx context.Context, cio domain.CashInOut) error {
	m := models.FromDomainCashInOut(cio)
	query := `
		INSERT INTO cash_in_outs (` + cashInOutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`

	_, err := r.db.Exec(ctx, query,
		m.CashInOutID,
		m.AccountID,
		m.Currency,
		m.AbsAmount,
		m.Withdrawal,
		m.RequestDay,
		m.RequestDate,
		m.EventDay,
		m.ValueDay,
		m.TargetBankRef,
		m.SelfBankRef,
		m.Status,
		m.CashflowID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cash-in-out %s: %w", m.CashInOutID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save cash-in-out "+m.CashInOutID, err)
	}
	return nil
}

// UpdateCashInOut persists a status transition and the spawned cashflow reference.
func (r *PgxCashInOutRepository) UpdateCashInOut(ctx context.Context, cio domain.CashInOut) error {
	m := models.FromDomainCashInOut(cio)
	query := `
		UPDATE cash_in_outs
		SET status = $1, cashflow_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE cash_in_out_id = $5;`

	tag, err := r.db.Exec(ctx, query, m.Status, m.CashflowID, m.LastUpdatedAt, m.LastUpdatedBy, m.CashInOutID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cash-in-out "+m.CashInOutID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindUnprocessedByEventDay retrieves every request still awaiting processing on eventDay.
func (r *PgxCashInOutRepository) FindUnprocessedByEventDay(ctx context.Context, eventDay time.Time) ([]domain.CashInOut, error) {
	query := `SELECT ` + cashInOutColumns + `
		FROM cash_in_outs
		WHERE event_day = $1 AND status = ANY($2)
		ORDER BY created_at, cash_in_out_id;`
	return r.list(ctx, query, domain.DateOf(eventDay), statusStrings(domain.UnprocessedStatuses))
}

// FindUnprocessedByAccountCurrency retrieves pending requests of one direction.
func (r *PgxCashInOutRepository) FindUnprocessedByAccountCurrency(ctx context.Context, accountID, currency string, withdrawal bool) ([]domain.CashInOut, error) {
	query := `SELECT ` + cashInOutColumns + `
		FROM cash_in_outs
		WHERE account_id = $1 AND currency = $2 AND withdrawal = $3 AND status = ANY($4)
		ORDER BY last_updated_at DESC, cash_in_out_id DESC;`
	return r.list(ctx, query, accountID, currency, withdrawal, statusStrings(domain.UnprocessedStatuses))
}

// FindUnprocessedByAccount retrieves pending requests, most recently updated first.
func (r *PgxCashInOutRepository) FindUnprocessedByAccount(ctx context.Context, accountID string) ([]domain.CashInOut, error) {
	query := `SELECT ` + cashInOutColumns + `
		FROM cash_in_outs
		WHERE account_id = $1 AND status = ANY($2)
		ORDER BY last_updated_at DESC, cash_in_out_id DESC;`
	return r.list(ctx, query, accountID, statusStrings(domain.UnprocessedStatuses))
}

// FindCashInOuts runs the reporting search using token-based pagination.
// Rows are ordered by last_updated_at DESC with the ID as tie-breaker.
func (r *PgxCashInOutRepository) FindCashInOuts(ctx context.Context, criteria portsrepo.FindCashInOut) ([]domain.CashInOut, *string, error) {
	limit := criteria.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	conds := []string{}
	args := []any{}
	add := func(cond string, arg ...any) {
		for _, a := range arg {
			args = append(args, a)
			cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1)
		}
		conds = append(conds, cond)
	}

	if criteria.Currency != "" {
		add("currency = ?", strings.ToUpper(criteria.Currency))
	}
	if len(criteria.Statuses) > 0 {
		add("status = ANY(?)", statusStrings(criteria.Statuses))
	}
	if !criteria.UpdatedFrom.IsZero() {
		add("last_updated_at >= ?", criteria.UpdatedFrom)
	}
	if !criteria.UpdatedTo.IsZero() {
		add("last_updated_at <= ?", criteria.UpdatedTo)
	}
	if criteria.NextToken != nil && *criteria.NextToken != "" {
		lastUpdatedAt, lastID, err := pagination.DecodeToken(*criteria.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewFieldValidationError("nextToken", err.Error())
		}
		// Tuple comparison is concise and efficient in Postgres
		add("(last_updated_at, cash_in_out_id) < (?, ?)", lastUpdatedAt, lastID)
	}

	query := `SELECT ` + cashInOutColumns + ` FROM cash_in_outs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, fetchLimit)
	query += " ORDER BY last_updated_at DESC, cash_in_out_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	cios, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	if len(cios) <= limit {
		return cios, nil, nil
	}
	cios = cios[:limit]
	last := cios[limit-1]
	token := pagination.EncodeToken(last.LastUpdatedAt, last.CashInOutID)
	return cios, &token, nil
}

func (r *PgxCashInOutRepository) list(ctx context.Context, query string, args ...any) ([]domain.CashInOut, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cash-in-outs", err)
	}
	defer rows.Close()

	cios := []domain.CashInOut{}
	for rows.Next() {
		cio, err := scanCashInOut(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cash-in-out row", err)
		}
		cios = append(cios, cio)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating cash-in-out rows", err)
	}
	return cios, nil
}
