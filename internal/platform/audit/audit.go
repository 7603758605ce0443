// Package audit records the start, end and failure of use-case invocations.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	"github.com/SscSPs/cash_ledger/internal/middleware"
)

// Categories.
const (
	CategoryAsset = "Asset"
	CategoryBatch = "Batch"
	CategoryAdmin = "Admin"
)

// Auditor logs use cases. It never changes their outcome.
type Auditor struct {
	now func() time.Time
}

// New creates an Auditor.
func New() *Auditor {
	return &Auditor{now: time.Now}
}

// Audit runs fn and logs its lifecycle with the actor and duration.
func (a *Auditor) Audit(ctx context.Context, actor domain.Actor, category, message string, fn func() error) error {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("audit_category", category),
		slog.String("audit_message", message),
		slog.String("actor_id", actor.ID),
		slog.String("actor_role", string(actor.Role)),
	)

	start := a.now()
	logger.Info("[start]")
	err := fn()
	elapsed := a.now().Sub(start)
	if err != nil {
		logger.Warn("[failure]", slog.Duration("duration", elapsed), slog.String("error", err.Error()))
		return err
	}
	logger.Info("[end]", slog.Duration("duration", elapsed))
	return nil
}

// Call is Audit for use cases that produce a value.
func Call[T any](ctx context.Context, a *Auditor, actor domain.Actor, category, message string, fn func() (T, error)) (T, error) {
	var out T
	err := a.Audit(ctx, actor, category, message, func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
