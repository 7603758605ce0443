package repositories

import (
	"context"
)

// Store groups the repositories that make up one consistent view of the ledger.
// Inside a Tx every repository reads and writes through the same transaction.
type Store interface {
	CashBalances() CashBalanceRepository
	Cashflows() CashflowRepository
	CashInOuts() CashInOutRepository
}

// Tx is a unit of work. Writes made through it become visible to other callers
// only after Commit.
type Tx interface {
	Store

	// Commit commits the transaction
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction. Rolling back a finished transaction is a no-op.
	Rollback(ctx context.Context) error
}

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (Tx, error)
}
