package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/SscSPs/cash_ledger/internal/dto"
	"github.com/SscSPs/cash_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Message keys for request binding failures.
const (
	errKeyBindingMalformed = "error.binding.malformed"
	errKeyBindingPrefix    = "error.binding."
)

// respondError maps a service error onto a status code. Validation failures
// carry every warn in the body.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if verr, ok := apperrors.AsValidation(err); ok {
		logger.Warn(action+" rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Warns: verr.Warns})
		return
	}
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(action+": not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn(action+": duplicate", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "Already exists"})
	default:
		logger.Error(action+" failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to " + strings.ToLower(action)})
	}
}

// respondBindError answers 400 for a request that could not be bound.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format", Warns: bindingWarns(err)})
}

// bindingWarns turns validator field errors into field warns.
func bindingWarns(err error) []apperrors.Warn {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperrors.Warn{{Message: errKeyBindingMalformed}}
	}
	warns := make([]apperrors.Warn, 0, len(verrs))
	for _, fe := range verrs {
		w := apperrors.Warn{Field: lowerFirst(fe.Field()), Message: errKeyBindingPrefix + fe.Tag()}
		if fe.Param() != "" {
			w.Args = []any{fe.Param()}
		}
		warns = append(warns, w)
	}
	return warns
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
