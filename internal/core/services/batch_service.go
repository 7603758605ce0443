package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
	"github.com/SscSPs/cash_ledger/internal/platform/audit"
	"github.com/SscSPs/cash_ledger/internal/platform/lock"
	"github.com/SscSPs/cash_ledger/internal/platform/txscope"
)

// Job names.
const (
	JobClosingCashOut  = "closingCashOut"
	JobRealizeCashflow = "realizeCashflow"
	JobAdvanceDay      = "processDay"
)

type batchService struct {
	BaseService
	scope     *txscope.Scope
	reader    portsrepo.Store
	calendar  portssvc.BusinessCalendar
	cios      portssvc.CashInOutProcessorSvc
	cashflows portssvc.CashflowSvc
	auditor   *audit.Auditor
}

// BatchOption configures the batch service
type BatchOption func(*batchService)

// WithBatchAuditor sets the audit sink
func WithBatchAuditor(a *audit.Auditor) BatchOption {
	return func(s *batchService) {
		s.auditor = a
	}
}

// NewBatchService creates the daily batch orchestrator.
func NewBatchService(
	scope *txscope.Scope,
	reader portsrepo.Store,
	calendar portssvc.BusinessCalendar,
	cios portssvc.CashInOutProcessorSvc,
	cashflows portssvc.CashflowSvc,
	options ...BatchOption,
) portssvc.BatchSvc {
	svc := &batchService{
		scope:     scope,
		reader:    reader,
		calendar:  calendar,
		cios:      cios,
		cashflows: cashflows,
		auditor:   audit.New(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BatchSvc = (*batchService)(nil)

func (s *batchService) CloseCashOut(ctx context.Context, actor domain.Actor) (*domain.BatchReport, error) {
	return audit.Call(ctx, s.auditor, actor, audit.CategoryBatch, JobClosingCashOut, func() (*domain.BatchReport, error) {
		today := s.calendar.Today()
		due, err := s.cios.FindDue(ctx, s.reader, today)
		if err != nil {
			return nil, fmt.Errorf("failed to find due cash-in-outs: %w", err)
		}

		report := &domain.BatchReport{Job: JobClosingCashOut, BusinessDay: today}
		for _, item := range due {
			outcome := s.runItem(ctx, item.CashInOutID, item.AccountID,
				func(ctx context.Context, store portsrepo.Store) error {
					cio, err := store.CashInOuts().FindCashInOutByID(ctx, item.CashInOutID)
					if err != nil {
						return err
					}
					_, err = s.cios.Process(ctx, store, actor, cio)
					return err
				},
				func(ctx context.Context, store portsrepo.Store) error {
					cio, err := store.CashInOuts().FindCashInOutByID(ctx, item.CashInOutID)
					if err != nil {
						return err
					}
					_, err = s.cios.Error(ctx, store, actor, cio)
					return err
				})
			report.Outcomes = append(report.Outcomes, outcome)
		}
		s.logReport(ctx, report)
		return report, nil
	})
}

func (s *batchService) RealizeCashflows(ctx context.Context, actor domain.Actor) (*domain.BatchReport, error) {
	return audit.Call(ctx, s.auditor, actor, audit.CategoryBatch, JobRealizeCashflow, func() (*domain.BatchReport, error) {
		today := s.calendar.Today()
		due, err := s.cashflows.FindDoRealize(ctx, s.reader, today)
		if err != nil {
			return nil, fmt.Errorf("failed to find due cashflows: %w", err)
		}

		report := &domain.BatchReport{Job: JobRealizeCashflow, BusinessDay: today}
		for _, item := range due {
			outcome := s.runItem(ctx, item.CashflowID, item.AccountID,
				func(ctx context.Context, store portsrepo.Store) error {
					cf, err := store.Cashflows().FindCashflowByID(ctx, item.CashflowID)
					if err != nil {
						return err
					}
					_, err = s.cashflows.Realize(ctx, store, actor, cf)
					return err
				},
				func(ctx context.Context, store portsrepo.Store) error {
					cf, err := store.Cashflows().FindCashflowByID(ctx, item.CashflowID)
					if err != nil {
						return err
					}
					_, err = s.cashflows.Error(ctx, store, actor, cf)
					return err
				})
			report.Outcomes = append(report.Outcomes, outcome)
		}
		s.logReport(ctx, report)
		return report, nil
	})
}

func (s *batchService) AdvanceDay(ctx context.Context, actor domain.Actor) (time.Time, error) {
	return audit.Call(ctx, s.auditor, actor, audit.CategoryBatch, JobAdvanceDay, func() (time.Time, error) {
		return s.calendar.Advance(ctx), nil
	})
}

func (s *batchService) RunDaily(ctx context.Context, actor domain.Actor) ([]domain.BatchReport, error) {
	closing, err := s.CloseCashOut(ctx, actor)
	if err != nil {
		return nil, err
	}
	realizing, err := s.RealizeCashflows(ctx, actor)
	if err != nil {
		return []domain.BatchReport{*closing}, err
	}
	if _, err := s.AdvanceDay(ctx, actor); err != nil {
		return []domain.BatchReport{*closing, *realizing}, err
	}
	return []domain.BatchReport{*closing, *realizing}, nil
}

// runItem processes one item in its own locked transaction. On failure the
// item is demoted to error in a second, separate transaction.
func (s *batchService) runItem(ctx context.Context, id, accountID string, process, demote func(context.Context, portsrepo.Store) error) domain.ItemOutcome {
	err := s.runLocked(ctx, accountID, process)
	if err == nil {
		return domain.Processed(id, accountID)
	}
	s.logItemFailure(ctx, err, "Batch item failed", slog.String("item_id", id), slog.String("account_id", accountID))

	if recoveryErr := s.runLocked(ctx, accountID, demote); recoveryErr != nil {
		s.LogError(ctx, recoveryErr, "Batch item could not be marked as error",
			slog.String("item_id", id),
			slog.String("account_id", accountID),
			slog.String("cause", err.Error()))
		return domain.DoubleFault(id, accountID, err, recoveryErr)
	}
	return domain.Recovered(id, accountID, err)
}

// runLocked turns a panic inside fn into an error so one item cannot stop the pass.
func (s *batchService) runLocked(ctx context.Context, accountID string, fn func(context.Context, portsrepo.Store) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewAppError(500, "batch item panicked", fmt.Errorf("%v", r))
		}
	}()
	return s.scope.RunLocked(ctx, accountID, lock.Write, fn)
}

func (s *batchService) logItemFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrValidation) {
		s.LogWarn(ctx, err, msg, keyvals...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func (s *batchService) logReport(ctx context.Context, report *domain.BatchReport) {
	s.LogInfo(ctx, "Batch pass finished",
		slog.String("job", report.Job),
		slog.String("business_day", report.BusinessDay.Format(domain.DayLayout)),
		slog.Int("processed", report.Count(domain.OutcomeProcessed)),
		slog.Int("recovered", report.Count(domain.OutcomeRecovered)),
		slog.Int("double_fault", report.Count(domain.OutcomeDoubleFault)))
}
