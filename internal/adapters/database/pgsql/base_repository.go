package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// runs unchanged inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db querier
}

// store groups the repositories over one querier.
type store struct {
	balances  *PgxCashBalanceRepository
	cashflows *PgxCashflowRepository
	cios      *PgxCashInOutRepository
}

func newStore(db querier) store {
	base := BaseRepository{db: db}
	return store{
		balances:  &PgxCashBalanceRepository{BaseRepository: base},
		cashflows: &PgxCashflowRepository{BaseRepository: base},
		cios:      &PgxCashInOutRepository{BaseRepository: base},
	}
}

func (s store) CashBalances() portsrepo.CashBalanceRepository { return s.balances }
func (s store) Cashflows() portsrepo.CashflowRepository       { return s.cashflows }
func (s store) CashInOuts() portsrepo.CashInOutRepository     { return s.cios }

// TxManager begins pgx transactions on a pool.
type TxManager struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*TxManager)(nil)

// Begin starts a new database transaction
func (m *TxManager) Begin(ctx context.Context) (portsrepo.Tx, error) {
	tx, err := m.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return &pgxTx{store: newStore(tx), tx: tx}, nil
}

type pgxTx struct {
	store
	tx pgx.Tx
}

// Commit commits a transaction
func (t *pgxTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (t *pgxTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// isUniqueViolation reports a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
