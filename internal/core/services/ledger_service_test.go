package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cash_ledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	ledgerSuite
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) applyDelta(delta string) {
	err := s.inTx(func(ctx context.Context, store portsrepo.Store) error {
		b, err := s.svc.CashBalance.GetOrCreate(ctx, store, accountID, currency)
		if err != nil {
			return err
		}
		_, err = s.svc.CashBalance.ApplyDelta(ctx, store, b, dec(delta))
		return err
	})
	s.Require().NoError(err)
}

func (s *LedgerServiceTestSuite) TestApplyDelta_TruncatesToCurrencyScale() {
	s.seedBalance("10.02")

	steps := []struct{ delta, want string }{
		{"11.51", "21.53"},
		{"11.516", "33.04"},
		{"-41.51", "-8.47"},
	}
	for _, step := range steps {
		s.applyDelta(step.delta)
		s.True(dec(step.want).Equal(s.balance()), "after %s: want %s, got %s", step.delta, step.want, s.balance())
	}
}

func (s *LedgerServiceTestSuite) TestGetOrCreate_RollsForward() {
	s.seedBalance("100")
	s.advance(1)

	var rolled *domain.CashBalance
	err := s.inTx(func(ctx context.Context, store portsrepo.Store) error {
		var err error
		rolled, err = s.svc.CashBalance.GetOrCreate(ctx, store, accountID, currency)
		return err
	})
	s.Require().NoError(err)

	s.Equal(s.clock.Today(), rolled.BaseDay)
	s.True(dec("100").Equal(rolled.Amount))
	s.NotEqual("seed-100", rolled.CashBalanceID)

	old, err := s.store.CashBalances().FindCashBalance(s.ctx, accountID, currency, day0)
	s.Require().NoError(err)
	s.Equal("seed-100", old.CashBalanceID)
}

func (s *LedgerServiceTestSuite) TestGetOrCreate_StartsAtZero() {
	err := s.inTx(func(ctx context.Context, store portsrepo.Store) error {
		b, err := s.svc.CashBalance.GetOrCreate(ctx, store, accountID, currency)
		if err != nil {
			return err
		}
		s.True(b.Amount.IsZero())
		return nil
	})
	s.Require().NoError(err)

	_, err = s.store.CashBalances().FindCashBalance(s.ctx, accountID, currency, day0)
	s.NoError(err, "the zero row is persisted")
}

func (s *LedgerServiceTestSuite) TestBalance_DoesNotPersistRollForward() {
	b, err := s.svc.CashBalance.Balance(s.ctx, accountID, currency)
	s.Require().NoError(err)
	s.True(b.Amount.IsZero())

	s.seedBalance("250.5")
	s.advance(1)

	b, err = s.svc.CashBalance.Balance(s.ctx, accountID, currency)
	s.Require().NoError(err)
	s.True(dec("250.5").Equal(b.Amount))
	s.Equal(s.clock.Today(), b.BaseDay)

	_, err = s.store.CashBalances().FindCashBalance(s.ctx, accountID, currency, s.clock.Today())
	s.ErrorIs(err, apperrors.ErrNotFound)
}

// --- cashflows ---

func (s *LedgerServiceTestSuite) register(req domain.RegCashflow) (*domain.Cashflow, error) {
	var cf *domain.Cashflow
	err := s.inTx(func(ctx context.Context, store portsrepo.Store) error {
		var err error
		cf, err = s.svc.Cashflow.Register(ctx, store, domain.SystemActor, req)
		return err
	})
	return cf, err
}

func cashIn(amount string, valueDay int) domain.RegCashflow {
	return domain.RegCashflow{
		AccountID: accountID,
		Currency:  currency,
		Amount:    dec(amount),
		Kind:      domain.CashIn,
		Remark:    domain.RemarkDeposit,
		ValueDay:  day0.AddDate(0, 0, valueDay),
	}
}

func (s *LedgerServiceTestSuite) TestRegister_ValueDayInPastFails() {
	s.advance(1)

	_, err := s.register(cashIn("10", 0))

	s.requireWarn(err, domain.ErrKeyCashflowBeforeEqualsDay)
	verr, _ := apperrors.AsValidation(err)
	s.Equal("valueDay", verr.Warns[0].Field)
}

func (s *LedgerServiceTestSuite) TestRegister_ValueDayTodayRealizesImmediately() {
	s.seedBalance("5")

	cf, err := s.register(cashIn("20.25", 0))

	s.Require().NoError(err)
	s.Equal(domain.StatusProcessed, cf.Status)
	s.Equal(domain.StatusProcessed, s.cashflow(cf.CashflowID).Status)
	s.Equal(day0, cf.EventDay)
	s.True(dec("25.25").Equal(s.balance()))
}

func (s *LedgerServiceTestSuite) TestRegister_FutureValueDayStaysUnprocessed() {
	cf, err := s.register(cashIn("20", 2))

	s.Require().NoError(err)
	s.Equal(domain.StatusUnprocessed, cf.Status)
	s.True(s.balance().IsZero())
}

func (s *LedgerServiceTestSuite) TestRealize_Guards() {
	future, err := s.register(cashIn("20", 2))
	s.Require().NoError(err)
	done, err := s.register(cashIn("1", 0))
	s.Require().NoError(err)

	err = s.inTx(func(ctx context.Context, store portsrepo.Store) error {
		_, err := s.svc.Cashflow.Realize(ctx, store, domain.SystemActor, future)
		return err
	})
	s.requireWarn(err, domain.ErrKeyCashflowRealizeDay)

	err = s.inTx(func(ctx context.Context, store portsrepo.Store) error {
		_, err := s.svc.Cashflow.Realize(ctx, store, domain.SystemActor, done)
		return err
	})
	s.requireWarn(err, domain.ErrKeyStatusProcessing)
	s.True(dec("1").Equal(s.balance()), "a rejected realize leaves the balance alone")
}

func (s *LedgerServiceTestSuite) TestError_OnlyFromUnprocessed() {
	cf, err := s.register(cashIn("20", 2))
	s.Require().NoError(err)

	err = s.inTx(func(ctx context.Context, store portsrepo.Store) error {
		failed, err := s.svc.Cashflow.Error(ctx, store, domain.SystemActor, cf)
		if err != nil {
			return err
		}
		_, err = s.svc.Cashflow.Error(ctx, store, domain.SystemActor, failed)
		return err
	})
	s.requireWarn(err, domain.ErrKeyStatusProcessing)
	s.Equal(domain.StatusUnprocessed, s.cashflow(cf.CashflowID).Status, "the failed unit of work was rolled back")

	err = s.inTx(func(ctx context.Context, store portsrepo.Store) error {
		_, err := s.svc.Cashflow.Error(ctx, store, domain.SystemActor, cf)
		return err
	})
	s.Require().NoError(err)
	s.Equal(domain.StatusError, s.cashflow(cf.CashflowID).Status)
}

// --- availability ---

func (s *LedgerServiceTestSuite) TestCanWithdraw() {
	s.seedBalance("10000")
	repo := s.store.Cashflows()
	cf := func(id, amount string, valueDay int, status domain.ActionStatus) domain.Cashflow {
		return domain.Cashflow{
			CashflowID: id, AccountID: accountID, Currency: currency, Amount: dec(amount),
			Kind: domain.CashIn, ValueDay: day0.AddDate(0, 0, valueDay), Status: status,
		}
	}
	s.Require().NoError(repo.SaveCashflow(s.ctx, cf("in", "1000", 2, domain.StatusUnprocessed)))
	s.Require().NoError(repo.SaveCashflow(s.ctx, cf("out", "-2000", 3, domain.StatusError)))
	s.Require().NoError(repo.SaveCashflow(s.ctx, cf("later", "-99999", 5, domain.StatusUnprocessed)))
	s.Require().NoError(repo.SaveCashflow(s.ctx, cf("done", "-99999", 1, domain.StatusProcessed)))

	cio := func(id, amount string, withdrawal bool, status domain.ActionStatus) domain.CashInOut {
		return domain.CashInOut{
			CashInOutID: id, AccountID: accountID, Currency: currency, AbsAmount: dec(amount),
			Withdrawal: withdrawal, Status: status,
		}
	}
	s.Require().NoError(s.store.CashInOuts().SaveCashInOut(s.ctx, cio("pending", "8000", true, domain.StatusUnprocessed)))
	s.Require().NoError(s.store.CashInOuts().SaveCashInOut(s.ctx, cio("deposit", "5000", false, domain.StatusUnprocessed)))
	s.Require().NoError(s.store.CashInOuts().SaveCashInOut(s.ctx, cio("gone", "7000", true, domain.StatusCancelled)))

	valueDay := day0.AddDate(0, 0, 3)
	check := func(amount string) bool {
		var ok bool
		err := s.inTx(func(ctx context.Context, store portsrepo.Store) error {
			var err error
			ok, err = s.svc.Asset.CanWithdraw(ctx, store, accountID, currency, dec(amount), valueDay)
			return err
		})
		s.Require().NoError(err)
		return ok
	}

	s.True(check("1000"))
	s.False(check("1001"))
}

func (s *LedgerServiceTestSuite) TestSeedOpeningBalances_RunsOnce() {
	balances := map[string]decimal.Decimal{accountID + ":usd": dec("500")}

	s.Require().NoError(services.SeedOpeningBalances(s.ctx, s.scope, s.svc.Cashflow, s.clock, balances))
	s.True(dec("500").Equal(s.balance()))

	s.Require().NoError(services.SeedOpeningBalances(s.ctx, s.scope, s.svc.Cashflow, s.clock, balances))
	s.True(dec("500").Equal(s.balance()), "a second start must not credit the account again")

	s.advance(1)
	s.Require().NoError(services.SeedOpeningBalances(s.ctx, s.scope, s.svc.Cashflow, s.clock, balances))
	s.True(dec("500").Equal(s.balance()))
}

func (s *LedgerServiceTestSuite) TestSeedOpeningBalances_SkipsExistingBalance() {
	s.seedBalance("80")

	s.Require().NoError(services.SeedOpeningBalances(s.ctx, s.scope, s.svc.Cashflow, s.clock,
		map[string]decimal.Decimal{accountID + ":USD": dec("500"), "acc_2:USD": dec("7")}))

	s.True(dec("80").Equal(s.balance()))
	b, err := s.svc.CashBalance.Balance(s.ctx, "acc_2", currency)
	s.Require().NoError(err)
	s.True(dec("7").Equal(b.Amount))
}
