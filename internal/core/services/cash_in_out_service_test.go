package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CashInOutServiceTestSuite struct {
	ledgerSuite
}

func TestCashInOutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashInOutServiceTestSuite))
}

func (s *CashInOutServiceTestSuite) process(cio *domain.CashInOut) (*domain.CashInOut, error) {
	var out *domain.CashInOut
	err := s.inTx(func(ctx context.Context, store portsrepo.Store) error {
		var err error
		out, err = s.svc.CashInOut.Process(ctx, store, domain.SystemActor, cio)
		return err
	})
	return out, err
}

func (s *CashInOutServiceTestSuite) TestWithdraw_ExactlyAvailable() {
	s.seedBalance("1000")

	cio := s.withdraw("1000")

	s.Equal(domain.StatusUnprocessed, cio.Status)
	s.Nil(cio.CashflowID)
	s.True(cio.Withdrawal)
	s.Equal(day0, cio.RequestDay)
	s.Equal(day0.AddDate(0, 0, 1), cio.EventDay)
	s.Equal(day0.AddDate(0, 0, 3), cio.ValueDay)
	s.Equal("SELF-001", cio.SelfBankRef)
	s.Equal(accountID, cio.CreatedBy)
	s.Equal(cio.CashInOutID, s.cio(cio.CashInOutID).CashInOutID)
	s.notifier.AssertNumberOfCalls(s.T(), "NotifyWithdrawal", 1)

	_, err := s.svc.CashInOut.Withdraw(s.ctx, customer, domain.RegCashInOut{
		AccountID: accountID, Currency: currency, AbsAmount: dec("0.01"),
	})
	s.requireWarn(err, domain.ErrKeyCIOWithdrawalAmount)
}

func (s *CashInOutServiceTestSuite) TestWithdraw_InsufficientFunds() {
	s.seedBalance("100")

	_, err := s.svc.CashInOut.Withdraw(s.ctx, customer, domain.RegCashInOut{
		AccountID: accountID, Currency: currency, AbsAmount: dec("100.01"),
	})

	s.requireWarn(err, domain.ErrKeyCIOWithdrawalAmount)
	pending, err := s.svc.CashInOut.FindUnprocessed(s.ctx, accountID)
	s.Require().NoError(err)
	s.Empty(pending)
	s.notifier.AssertNotCalled(s.T(), "NotifyWithdrawal", mock.Anything, mock.Anything)
}

func (s *CashInOutServiceTestSuite) TestWithdraw_ZeroAmount() {
	_, err := s.svc.CashInOut.Withdraw(s.ctx, customer, domain.RegCashInOut{
		AccountID: accountID, Currency: currency, AbsAmount: dec("0"),
	})

	s.requireWarn(err, domain.ErrKeyAbsAmountZero)
	verr, _ := apperrors.AsValidation(err)
	s.Equal("absAmount", verr.Warns[0].Field)
}

func (s *CashInOutServiceTestSuite) TestWithdraw_OtherAccountRejected() {
	s.seedBalance("1000")

	_, err := s.svc.CashInOut.Withdraw(s.ctx, domain.NewUserActor("someone_else"), domain.RegCashInOut{
		AccountID: accountID, Currency: currency, AbsAmount: dec("1"),
	})

	s.requireWarn(err, domain.ErrKeyCIOAccountMismatch)
}

func (s *CashInOutServiceTestSuite) TestUnknownRoleCannotActOnOtherAccounts() {
	s.seedBalance("1000")
	cio := s.withdraw("100")
	guest := domain.Actor{ID: "someone_else", Role: "GUEST"}

	_, err := s.svc.CashInOut.Withdraw(s.ctx, guest, domain.RegCashInOut{
		AccountID: accountID, Currency: currency, AbsAmount: dec("1"),
	})
	s.requireWarn(err, domain.ErrKeyCIOAccountMismatch)

	_, err = s.svc.CashInOut.CancelWithdrawal(s.ctx, guest, cio.CashInOutID)
	s.requireWarn(err, domain.ErrKeyCIOAccountMismatch)
	s.Equal(domain.StatusUnprocessed, s.cio(cio.CashInOutID).Status)
}

func (s *CashInOutServiceTestSuite) TestWithdraw_NotifierFailureKeepsRequest() {
	s.notifier.ExpectedCalls = nil
	s.notifier.On("NotifyWithdrawal", mock.Anything, mock.Anything).Return(errors.New("queue down")).Once()
	s.seedBalance("50")

	cio := s.withdraw("50")

	s.Equal(domain.StatusUnprocessed, s.cio(cio.CashInOutID).Status)
	s.notifier.AssertExpectations(s.T())
}

func (s *CashInOutServiceTestSuite) TestWithdraw_ConcurrentRequestsCannotOverdraw() {
	s.seedBalance("1000")

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, rejected := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.CashInOut.Withdraw(context.Background(), customer, domain.RegCashInOut{
				AccountID: accountID, Currency: currency, AbsAmount: dec("200"),
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if errors.Is(err, apperrors.ErrValidation) {
				rejected++
			}
		}()
	}
	wg.Wait()

	s.Equal(5, succeeded)
	s.Equal(5, rejected)
}

func (s *CashInOutServiceTestSuite) TestCancelWithdrawal() {
	s.seedBalance("1000")
	early := s.withdraw("100")
	late := s.withdraw("100")

	cancelled, err := s.svc.CashInOut.CancelWithdrawal(s.ctx, customer, early.CashInOutID)
	s.Require().NoError(err)
	s.Equal(domain.StatusCancelled, cancelled.Status)
	s.Nil(cancelled.CashflowID)
	s.Equal(domain.StatusCancelled, s.cio(early.CashInOutID).Status)

	s.advance(1) // event day reached
	_, err = s.svc.CashInOut.CancelWithdrawal(s.ctx, customer, late.CashInOutID)
	s.requireWarn(err, domain.ErrKeyCIOEventDayBeforeEqualsDay)
	s.Equal(domain.StatusUnprocessed, s.cio(late.CashInOutID).Status)
}

func (s *CashInOutServiceTestSuite) TestCancelWithdrawal_Ownership() {
	s.seedBalance("1000")
	cio := s.withdraw("100")

	_, err := s.svc.CashInOut.CancelWithdrawal(s.ctx, domain.NewUserActor("intruder"), cio.CashInOutID)
	s.requireWarn(err, domain.ErrKeyCIOAccountMismatch)

	admin := domain.Actor{ID: "ops", Role: domain.RoleAdministrator}
	cancelled, err := s.svc.CashInOut.CancelWithdrawal(s.ctx, admin, cio.CashInOutID)
	s.Require().NoError(err)
	s.Equal("ops", cancelled.LastUpdatedBy)

	_, err = s.svc.CashInOut.CancelWithdrawal(s.ctx, customer, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CashInOutServiceTestSuite) TestProcess_WaitsForEventDay() {
	s.seedBalance("1000")
	cio := s.withdraw("300")

	_, err := s.process(cio)
	s.requireWarn(err, domain.ErrKeyCIOEventDayAfterEqualsDay)

	s.advance(1)
	processed, err := s.process(cio)
	s.Require().NoError(err)

	s.Equal(domain.StatusProcessed, processed.Status)
	s.Require().NotNil(processed.CashflowID)
	cf := s.cashflow(*processed.CashflowID)
	s.Equal(accountID, cf.AccountID)
	s.Equal(currency, cf.Currency)
	s.True(dec("-300").Equal(cf.Amount))
	s.Equal(domain.CashOut, cf.Kind)
	s.Equal(domain.RemarkWithdrawal, cf.Remark)
	s.Equal(cio.EventDay, cf.EventDay)
	s.Equal(cio.ValueDay, cf.ValueDay)
	s.Equal(domain.StatusUnprocessed, cf.Status, "value day not reached yet")
	s.True(dec("1000").Equal(s.balance()))

	_, err = s.process(processed)
	s.requireWarn(err, domain.ErrKeyStatusProcessing)
}

func (s *CashInOutServiceTestSuite) TestDeposit_RealizedWhenProcessed() {
	s.seedBalance("10")
	ops := domain.Actor{ID: "ops", Role: domain.RoleAdministrator}

	cio, err := s.svc.CashInOut.Deposit(s.ctx, ops, domain.RegCashInOut{
		AccountID: accountID, Currency: "usd", AbsAmount: dec("500"),
	})
	s.Require().NoError(err)
	s.False(cio.Withdrawal)
	s.Equal(currency, cio.Currency)
	s.Equal(cio.EventDay, cio.ValueDay)

	s.advance(1)
	processed, err := s.process(cio)
	s.Require().NoError(err)

	cf := s.cashflow(*processed.CashflowID)
	s.True(dec("500").Equal(cf.Amount))
	s.Equal(domain.CashIn, cf.Kind)
	s.Equal(domain.StatusProcessed, cf.Status)
	s.True(dec("510").Equal(s.balance()))
}

func (s *CashInOutServiceTestSuite) TestErrorTransition() {
	s.seedBalance("1000")
	cio := s.withdraw("10")

	err := s.inTx(func(ctx context.Context, store portsrepo.Store) error {
		failed, err := s.svc.CashInOut.Error(ctx, store, domain.SystemActor, cio)
		if err != nil {
			return err
		}
		s.Equal(domain.StatusError, failed.Status)
		return nil
	})
	s.Require().NoError(err)

	err = s.inTx(func(ctx context.Context, store portsrepo.Store) error {
		_, err := s.svc.CashInOut.Error(ctx, store, domain.SystemActor, s.cio(cio.CashInOutID))
		return err
	})
	s.requireWarn(err, domain.ErrKeyStatusProcessing)
}

func (s *CashInOutServiceTestSuite) TestQueries() {
	s.seedBalance("1000")
	first := s.withdraw("10")
	second := s.withdraw("20")
	_, err := s.svc.CashInOut.CancelWithdrawal(s.ctx, customer, first.CashInOutID)
	s.Require().NoError(err)

	pending, err := s.svc.CashInOut.FindUnprocessed(s.ctx, accountID)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(second.CashInOutID, pending[0].CashInOutID)

	found, next, err := s.svc.CashInOut.Search(s.ctx, portsrepo.FindCashInOut{
		Currency: currency,
		Statuses: []domain.ActionStatus{domain.StatusCancelled},
	})
	s.Require().NoError(err)
	s.Nil(next)
	s.Require().Len(found, 1)
	s.Equal(first.CashInOutID, found[0].CashInOutID)

	_, _, err = s.svc.CashInOut.Search(s.ctx, portsrepo.FindCashInOut{
		Statuses: []domain.ActionStatus{"BOGUS"},
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}
