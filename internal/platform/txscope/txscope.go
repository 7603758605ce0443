// Package txscope composes an account lock with a transactional unit of work.
package txscope

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cash_ledger/internal/middleware"
	"github.com/SscSPs/cash_ledger/internal/platform/lock"
)

// Scope runs units of work as lock -> begin -> fn -> commit|rollback -> unlock.
type Scope struct {
	locks *lock.Registry
	txm   portsrepo.TransactionManager
}

// New creates a Scope.
func New(locks *lock.Registry, txm portsrepo.TransactionManager) *Scope {
	return &Scope{locks: locks, txm: txm}
}

// Locks exposes the registry for read-only callers that lock without a transaction.
func (s *Scope) Locks() *lock.Registry {
	return s.locks
}

// Run executes fn in a transaction without taking a lock.
func (s *Scope) Run(ctx context.Context, fn func(ctx context.Context, store portsrepo.Store) error) error {
	return s.RunLocked(ctx, "", lock.Write, fn)
}

// RunLocked executes fn in a transaction while holding the lock for key. The
// lock is released only after the transaction has committed or rolled back.
// Errors from fn are returned unchanged; no retry is attempted.
func (s *Scope) RunLocked(ctx context.Context, key string, mode lock.Mode, fn func(ctx context.Context, store portsrepo.Store) error) (err error) {
	h := s.locks.Acquire(key, mode)
	defer h.Release()

	tx, err := s.txm.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback after a successful Commit is a no-op.
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to rollback transaction",
				slog.String("lock_key", key), slog.String("error", rbErr.Error()))
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Call is RunLocked for units of work that produce a value.
func Call[T any](ctx context.Context, s *Scope, key string, mode lock.Mode, fn func(ctx context.Context, store portsrepo.Store) (T, error)) (T, error) {
	var out T
	err := s.RunLocked(ctx, key, mode, func(ctx context.Context, store portsrepo.Store) error {
		v, err := fn(ctx, store)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
