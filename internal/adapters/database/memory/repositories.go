package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cash_ledger/internal/utils/pagination"
)

const defaultPageSize = 20

var errTxDone = errors.New("transaction already finished")

var (
	_ portsrepo.CashBalanceRepository = (*session)(nil)
	_ portsrepo.CashflowRepository    = (*session)(nil)
	_ portsrepo.CashInOutRepository   = (*session)(nil)
)

// --- cash balances ---

func (s *session) FindCashBalance(_ context.Context, accountID, currency string, baseDay time.Time) (*domain.CashBalance, error) {
	day := domain.DateOf(baseDay)
	for _, b := range rows(s, balancesOf) {
		if b.AccountID == accountID && b.Currency == currency && b.BaseDay.Equal(day) {
			return &b, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *session) FindLatestCashBalance(_ context.Context, accountID, currency string) (*domain.CashBalance, error) {
	var latest *domain.CashBalance
	for _, b := range rows(s, balancesOf) {
		if b.AccountID != accountID || b.Currency != currency {
			continue
		}
		if latest == nil || b.BaseDay.After(latest.BaseDay) {
			v := b
			latest = &v
		}
	}
	if latest == nil {
		return nil, apperrors.ErrNotFound
	}
	return latest, nil
}

func (s *session) SaveCashBalance(ctx context.Context, balance domain.CashBalance) error {
	if _, ok := row(s, balancesOf, balance.CashBalanceID); ok {
		return fmt.Errorf("cash balance %s: %w", balance.CashBalanceID, apperrors.ErrDuplicate)
	}
	if _, err := s.FindCashBalance(ctx, balance.AccountID, balance.Currency, balance.BaseDay); err == nil {
		return fmt.Errorf("cash balance %s/%s/%s: %w", balance.AccountID, balance.Currency,
			balance.BaseDay.Format(domain.DayLayout), apperrors.ErrDuplicate)
	}
	s.write(func(t *tables) { t.balances[balance.CashBalanceID] = balance })
	return nil
}

func (s *session) UpdateCashBalance(_ context.Context, balance domain.CashBalance) error {
	if _, ok := row(s, balancesOf, balance.CashBalanceID); !ok {
		return apperrors.ErrNotFound
	}
	s.write(func(t *tables) { t.balances[balance.CashBalanceID] = balance })
	return nil
}

// --- cashflows ---

func (s *session) FindCashflowByID(_ context.Context, cashflowID string) (*domain.Cashflow, error) {
	cf, ok := row(s, cashflowsOf, cashflowID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &cf, nil
}

func (s *session) SaveCashflow(_ context.Context, cf domain.Cashflow) error {
	if _, ok := row(s, cashflowsOf, cf.CashflowID); ok {
		return fmt.Errorf("cashflow %s: %w", cf.CashflowID, apperrors.ErrDuplicate)
	}
	s.write(func(t *tables) { t.cashflows[cf.CashflowID] = cf })
	return nil
}

func (s *session) UpdateCashflow(_ context.Context, cf domain.Cashflow) error {
	if _, ok := row(s, cashflowsOf, cf.CashflowID); !ok {
		return apperrors.ErrNotFound
	}
	s.write(func(t *tables) { t.cashflows[cf.CashflowID] = cf })
	return nil
}

func (s *session) FindDoRealizeCashflows(_ context.Context, valueDay time.Time) ([]domain.Cashflow, error) {
	day := domain.DateOf(valueDay)
	return s.cashflows(func(cf domain.Cashflow) bool {
		return cf.Status.IsUnprocessed() && cf.ValueDay.Equal(day)
	}), nil
}

func (s *session) FindUnrealizedCashflows(_ context.Context, accountID, currency string, valueDay time.Time) ([]domain.Cashflow, error) {
	day := domain.DateOf(valueDay)
	return s.cashflows(func(cf domain.Cashflow) bool {
		return cf.AccountID == accountID && cf.Currency == currency &&
			cf.Status.IsUnprocessed() && !cf.ValueDay.After(day)
	}), nil
}

func (s *session) cashflows(keep func(domain.Cashflow) bool) []domain.Cashflow {
	out := []domain.Cashflow{}
	for _, cf := range rows(s, cashflowsOf) {
		if keep(cf) {
			out = append(out, cf)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CashflowID < out[j].CashflowID
	})
	return out
}

// --- cash-in-out ---

func (s *session) FindCashInOutByID(_ context.Context, cashInOutID string) (*domain.CashInOut, error) {
	cio, ok := row(s, ciosOf, cashInOutID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &cio, nil
}

func (s *session) SaveCashInOut(_ context.Context, cio domain.CashInOut) error {
	if _, ok := row(s, ciosOf, cio.CashInOutID); ok {
		return fmt.Errorf("cash-in-out %s: %w", cio.CashInOutID, apperrors.ErrDuplicate)
	}
	s.write(func(t *tables) { t.cios[cio.CashInOutID] = cio })
	return nil
}

func (s *session) UpdateCashInOut(_ context.Context, cio domain.CashInOut) error {
	if _, ok := row(s, ciosOf, cio.CashInOutID); !ok {
		return apperrors.ErrNotFound
	}
	s.write(func(t *tables) { t.cios[cio.CashInOutID] = cio })
	return nil
}

func (s *session) FindUnprocessedByEventDay(_ context.Context, eventDay time.Time) ([]domain.CashInOut, error) {
	day := domain.DateOf(eventDay)
	out := s.cios(func(c domain.CashInOut) bool {
		return c.Status.IsUnprocessed() && c.EventDay.Equal(day)
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CashInOutID < out[j].CashInOutID
	})
	return out, nil
}

func (s *session) FindUnprocessedByAccountCurrency(_ context.Context, accountID, currency string, withdrawal bool) ([]domain.CashInOut, error) {
	out := s.cios(func(c domain.CashInOut) bool {
		return c.AccountID == accountID && c.Currency == currency &&
			c.Withdrawal == withdrawal && c.Status.IsUnprocessed()
	})
	sortByUpdatedDesc(out)
	return out, nil
}

func (s *session) FindUnprocessedByAccount(_ context.Context, accountID string) ([]domain.CashInOut, error) {
	out := s.cios(func(c domain.CashInOut) bool {
		return c.AccountID == accountID && c.Status.IsUnprocessed()
	})
	sortByUpdatedDesc(out)
	return out, nil
}

func (s *session) FindCashInOuts(_ context.Context, criteria portsrepo.FindCashInOut) ([]domain.CashInOut, *string, error) {
	limit := criteria.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	var cursorAt time.Time
	var cursorID string
	hasCursor := criteria.NextToken != nil && *criteria.NextToken != ""
	if hasCursor {
		var err error
		cursorAt, cursorID, err = pagination.DecodeToken(*criteria.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewFieldValidationError("nextToken", err.Error())
		}
	}

	out := s.cios(func(c domain.CashInOut) bool {
		if criteria.Currency != "" && !strings.EqualFold(c.Currency, criteria.Currency) {
			return false
		}
		if len(criteria.Statuses) > 0 && !slices.Contains(criteria.Statuses, c.Status) {
			return false
		}
		if !criteria.UpdatedFrom.IsZero() && c.LastUpdatedAt.Before(criteria.UpdatedFrom) {
			return false
		}
		if !criteria.UpdatedTo.IsZero() && c.LastUpdatedAt.After(criteria.UpdatedTo) {
			return false
		}
		return !hasCursor || pagination.After(c.LastUpdatedAt, c.CashInOutID, cursorAt, cursorID)
	})
	sortByUpdatedDesc(out)

	if len(out) <= limit {
		return out, nil, nil
	}
	out = out[:limit]
	last := out[limit-1]
	token := pagination.EncodeToken(last.LastUpdatedAt, last.CashInOutID)
	return out, &token, nil
}

func (s *session) cios(keep func(domain.CashInOut) bool) []domain.CashInOut {
	out := []domain.CashInOut{}
	for _, c := range rows(s, ciosOf) {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func sortByUpdatedDesc(cios []domain.CashInOut) {
	sort.Slice(cios, func(i, j int) bool {
		if !cios[i].LastUpdatedAt.Equal(cios[j].LastUpdatedAt) {
			return cios[i].LastUpdatedAt.After(cios[j].LastUpdatedAt)
		}
		return cios[i].CashInOutID > cios[j].CashInOutID
	})
}
