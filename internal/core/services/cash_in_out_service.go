package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
	"github.com/SscSPs/cash_ledger/internal/platform/audit"
	"github.com/SscSPs/cash_ledger/internal/platform/lock"
	"github.com/SscSPs/cash_ledger/internal/platform/txscope"
)

type cashInOutService struct {
	BaseService
	scope       *txscope.Scope
	reader      portsrepo.Store
	clock       portssvc.Clock
	assets      portssvc.AssetSvc
	cashflows   portssvc.CashflowSvc
	notifier    portssvc.Notifier
	auditor     *audit.Auditor
	newID       IDGenerator
	selfBankRef string
	eventOffset int
	valueOffset int
}

// CashInOutOption configures the cash-in-out service
type CashInOutOption func(*cashInOutService)

// WithNotifier sets the post-commit notifier
func WithNotifier(n portssvc.Notifier) CashInOutOption {
	return func(s *cashInOutService) {
		s.notifier = n
	}
}

// WithCashInOutAuditor sets the audit sink
func WithCashInOutAuditor(a *audit.Auditor) CashInOutOption {
	return func(s *cashInOutService) {
		s.auditor = a
	}
}

// WithCashInOutIDs overrides the ID generator
func WithCashInOutIDs(gen IDGenerator) CashInOutOption {
	return func(s *cashInOutService) {
		s.newID = gen
	}
}

// WithSelfBankRef sets the house bank account recorded on each request
func WithSelfBankRef(ref string) CashInOutOption {
	return func(s *cashInOutService) {
		s.selfBankRef = ref
	}
}

// WithWithdrawOffsets sets the business-day offsets of event and value day
func WithWithdrawOffsets(eventOffset, valueOffset int) CashInOutOption {
	return func(s *cashInOutService) {
		s.eventOffset = eventOffset
		s.valueOffset = valueOffset
	}
}

// NewCashInOutService creates the cash-in-out service.
func NewCashInOutService(
	scope *txscope.Scope,
	reader portsrepo.Store,
	clock portssvc.Clock,
	assets portssvc.AssetSvc,
	cashflows portssvc.CashflowSvc,
	options ...CashInOutOption,
) portssvc.CashInOutSvcFacade {
	svc := &cashInOutService{
		scope:       scope,
		reader:      reader,
		clock:       clock,
		assets:      assets,
		cashflows:   cashflows,
		auditor:     audit.New(),
		newID:       NewUUID,
		eventOffset: 1,
		valueOffset: 3,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CashInOutSvcFacade = (*cashInOutService)(nil)

// --- requester ---

func (s *cashInOutService) Withdraw(ctx context.Context, actor domain.Actor, req domain.RegCashInOut) (*domain.CashInOut, error) {
	return audit.Call(ctx, s.auditor, actor, audit.CategoryAsset, "withdraw", func() (*domain.CashInOut, error) {
		req.Withdrawal = true
		req.Currency = strings.ToUpper(req.Currency)
		if err := s.validateRequest(actor, req); err != nil {
			return nil, err
		}

		cio, err := txscope.Call(ctx, s.scope, req.AccountID, lock.Write, func(ctx context.Context, store portsrepo.Store) (*domain.CashInOut, error) {
			now := s.clock.Now()
			eventDay := s.clock.PlusBusinessDays(now.Day, s.eventOffset)
			valueDay := s.clock.PlusBusinessDays(now.Day, s.valueOffset)

			ok, err := s.assets.CanWithdraw(ctx, store, req.AccountID, req.Currency, req.AbsAmount, valueDay)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, apperrors.NewValidationError(domain.ErrKeyCIOWithdrawalAmount)
			}
			return s.save(ctx, store, req.Create(s.newID(), now, eventDay, valueDay, s.selfBankRef, actor))
		})
		if err != nil {
			s.LogWarn(ctx, err, "Withdrawal rejected",
				slog.String("account_id", req.AccountID),
				slog.String("amount", req.AbsAmount.String()))
			return nil, err
		}

		s.notify(ctx, *cio)
		return cio, nil
	})
}

func (s *cashInOutService) Deposit(ctx context.Context, actor domain.Actor, req domain.RegCashInOut) (*domain.CashInOut, error) {
	return audit.Call(ctx, s.auditor, actor, audit.CategoryAdmin, "deposit", func() (*domain.CashInOut, error) {
		req.Withdrawal = false
		req.Currency = strings.ToUpper(req.Currency)
		if err := req.Validate(); err != nil {
			return nil, err
		}
		return txscope.Call(ctx, s.scope, req.AccountID, lock.Write, func(ctx context.Context, store portsrepo.Store) (*domain.CashInOut, error) {
			now := s.clock.Now()
			eventDay := s.clock.PlusBusinessDays(now.Day, s.eventOffset)
			return s.save(ctx, store, req.Create(s.newID(), now, eventDay, eventDay, s.selfBankRef, actor))
		})
	})
}

func (s *cashInOutService) CancelWithdrawal(ctx context.Context, actor domain.Actor, cashInOutID string) (*domain.CashInOut, error) {
	return audit.Call(ctx, s.auditor, actor, audit.CategoryAsset, "cancelWithdrawal", func() (*domain.CashInOut, error) {
		// The account is needed for the lock key; the record is re-read under the lock.
		found, err := s.reader.CashInOuts().FindCashInOutByID(ctx, cashInOutID)
		if err != nil {
			return nil, err
		}
		return txscope.Call(ctx, s.scope, found.AccountID, lock.Write, func(ctx context.Context, store portsrepo.Store) (*domain.CashInOut, error) {
			cio, err := store.CashInOuts().FindCashInOutByID(ctx, cashInOutID)
			if err != nil {
				return nil, err
			}
			if !actor.MayActOn(cio.AccountID) {
				return nil, apperrors.NewValidationError(domain.ErrKeyCIOAccountMismatch)
			}
			return s.Cancel(ctx, store, actor, cio)
		})
	})
}

func (s *cashInOutService) validateRequest(actor domain.Actor, req domain.RegCashInOut) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !actor.MayActOn(req.AccountID) {
		return apperrors.NewValidationError(domain.ErrKeyCIOAccountMismatch)
	}
	return nil
}

func (s *cashInOutService) save(ctx context.Context, store portsrepo.Store, cio domain.CashInOut) (*domain.CashInOut, error) {
	if err := store.CashInOuts().SaveCashInOut(ctx, cio); err != nil {
		s.LogError(ctx, err, "Failed to save cash-in-out", slog.String("cash_in_out_id", cio.CashInOutID))
		return nil, fmt.Errorf("failed to save cash-in-out: %w", err)
	}
	s.LogInfo(ctx, "Cash-in-out registered",
		slog.String("cash_in_out_id", cio.CashInOutID),
		slog.String("account_id", cio.AccountID),
		slog.Bool("withdrawal", cio.Withdrawal),
		slog.String("amount", cio.AbsAmount.String()),
		slog.String("event_day", cio.EventDay.Format(domain.DayLayout)))
	return &cio, nil
}

func (s *cashInOutService) notify(ctx context.Context, cio domain.CashInOut) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyWithdrawal(ctx, cio); err != nil {
		s.LogError(ctx, err, "Failed to notify account holder",
			slog.String("cash_in_out_id", cio.CashInOutID),
			slog.String("account_id", cio.AccountID))
	}
}

// --- processor ---

func (s *cashInOutService) Process(ctx context.Context, store portsrepo.Store, actor domain.Actor, cio *domain.CashInOut) (*domain.CashInOut, error) {
	now := s.clock.Now()
	if err := cio.ValidateProcess(now); err != nil {
		return nil, err
	}

	cf, err := s.cashflows.Register(ctx, store, actor, cio.NewCashflowRequest())
	if err != nil {
		return nil, err
	}

	processed := *cio
	processed.MarkProcessed(cf.CashflowID, now, actor)
	if err := store.CashInOuts().UpdateCashInOut(ctx, processed); err != nil {
		return nil, fmt.Errorf("failed to update cash-in-out %s: %w", cio.CashInOutID, err)
	}
	s.LogInfo(ctx, "Cash-in-out processed",
		slog.String("cash_in_out_id", processed.CashInOutID),
		slog.String("cashflow_id", cf.CashflowID))
	return &processed, nil
}

func (s *cashInOutService) Cancel(ctx context.Context, store portsrepo.Store, actor domain.Actor, cio *domain.CashInOut) (*domain.CashInOut, error) {
	cancelled := *cio
	if err := cancelled.Cancel(s.clock.Now(), actor); err != nil {
		return nil, err
	}
	if err := store.CashInOuts().UpdateCashInOut(ctx, cancelled); err != nil {
		return nil, fmt.Errorf("failed to update cash-in-out %s: %w", cio.CashInOutID, err)
	}
	s.LogInfo(ctx, "Cash-in-out cancelled", slog.String("cash_in_out_id", cancelled.CashInOutID))
	return &cancelled, nil
}

func (s *cashInOutService) Error(ctx context.Context, store portsrepo.Store, actor domain.Actor, cio *domain.CashInOut) (*domain.CashInOut, error) {
	failed := *cio
	if err := failed.Error(s.clock.Now(), actor); err != nil {
		return nil, err
	}
	if err := store.CashInOuts().UpdateCashInOut(ctx, failed); err != nil {
		return nil, fmt.Errorf("failed to update cash-in-out %s: %w", cio.CashInOutID, err)
	}
	return &failed, nil
}

func (s *cashInOutService) FindDue(ctx context.Context, store portsrepo.Store, eventDay time.Time) ([]domain.CashInOut, error) {
	return store.CashInOuts().FindUnprocessedByEventDay(ctx, eventDay)
}

// --- reader ---

func (s *cashInOutService) FindUnprocessed(ctx context.Context, accountID string) ([]domain.CashInOut, error) {
	return lock.Call(s.scope.Locks(), accountID, lock.Read, func() ([]domain.CashInOut, error) {
		return s.reader.CashInOuts().FindUnprocessedByAccount(ctx, accountID)
	})
}

func (s *cashInOutService) Search(ctx context.Context, criteria portsrepo.FindCashInOut) ([]domain.CashInOut, *string, error) {
	for _, st := range criteria.Statuses {
		if !st.IsValid() {
			return nil, nil, apperrors.NewFieldValidationError("status", "error.ActionStatusType.invalid", string(st))
		}
	}
	return s.reader.CashInOuts().FindCashInOuts(ctx, criteria)
}
