package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_IsValidation(t *testing.T) {
	err := fmt.Errorf("withdraw: %w", apperrors.NewValidationError("error.CashInOut.withdrawAmount"))

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.False(t, errors.Is(err, apperrors.ErrInvocation))

	verr, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "error.CashInOut.withdrawAmount", verr.Global().Message)
}

func TestValidationError_GlobalPrefersGlobalWarn(t *testing.T) {
	verr := &apperrors.ValidationError{Warns: []apperrors.Warn{
		{Field: "absAmount", Message: "error.domain.AbsAmount.zero"},
		{Message: "error.ActionStatusType.processing"},
	}}

	assert.Equal(t, "error.ActionStatusType.processing", verr.Global().Message)
	assert.True(t, verr.HasMessage("error.domain.AbsAmount.zero"))
	assert.Contains(t, verr.Error(), "absAmount: error.domain.AbsAmount.zero")
}

func TestValidationError_GlobalFallsBackToHead(t *testing.T) {
	verr := apperrors.NewFieldValidationError("valueDay", "error.Cashflow.beforeEqualsDay")

	assert.Equal(t, "valueDay", verr.Global().Field)
}

func TestValidator(t *testing.T) {
	tests := []struct {
		name      string
		fn        func(v *apperrors.Validator)
		wantErr   bool
		wantWarns []string
	}{
		{
			name:    "all rules pass",
			fn:      func(v *apperrors.Validator) { v.Check(true, "a").CheckField(true, "f", "b").Verify(true, "c") },
			wantErr: false,
		},
		{
			name:      "check accumulates",
			fn:        func(v *apperrors.Validator) { v.Check(false, "a").CheckField(false, "f", "b") },
			wantErr:   true,
			wantWarns: []string{"a", "b"},
		},
		{
			name:      "verify stops later rules",
			fn:        func(v *apperrors.Validator) { v.Verify(false, "a").Verify(false, "b").Check(false, "c") },
			wantErr:   true,
			wantWarns: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apperrors.Validate(tt.fn)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			verr, ok := apperrors.AsValidation(err)
			require.True(t, ok)
			got := make([]string, 0, len(verr.Warns))
			for _, w := range verr.Warns {
				got = append(got, w.Message)
			}
			assert.Equal(t, tt.wantWarns, got)
		})
	}
}

func TestAppError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("save cashflow: %w", apperrors.NewAppError(500, "failed to save cashflow", cause))

	assert.True(t, errors.Is(err, apperrors.ErrInvocation))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "connection refused")
}
