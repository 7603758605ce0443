package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	"github.com/SscSPs/cash_ledger/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureCtx() (context.Context, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))
	return middleware.WithLogger(context.Background(), logger), buf
}

func TestAudit_Success(t *testing.T) {
	ctx, buf := captureCtx()
	a := New()

	err := a.Audit(ctx, domain.NewUserActor("acc-1"), CategoryAsset, "withdraw", func() error { return nil })

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "[start]")
	assert.Contains(t, out, "[end]")
	assert.Contains(t, out, "actor_id=acc-1")
	assert.NotContains(t, out, "[failure]")
}

func TestAudit_FailureReturnsError(t *testing.T) {
	ctx, buf := captureCtx()
	a := New()
	boom := errors.New("boom")

	err := a.Audit(ctx, domain.SystemActor, CategoryBatch, "closingCashOut", func() error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "[failure]")
	assert.NotContains(t, buf.String(), "[end]")
}

func TestCall_ReturnsValue(t *testing.T) {
	ctx, _ := captureCtx()

	v, err := Call(ctx, New(), domain.SystemActor, CategoryBatch, "count", func() (int, error) { return 3, nil })

	require.NoError(t, err)
	assert.Equal(t, 3, v)
}
