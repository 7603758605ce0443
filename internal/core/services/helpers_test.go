package services_test

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/cash_ledger/internal/adapters/database/memory"
	"github.com/SscSPs/cash_ledger/internal/apperrors"
	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
	"github.com/SscSPs/cash_ledger/internal/core/services"
	"github.com/SscSPs/cash_ledger/internal/platform/calendar"
	"github.com/SscSPs/cash_ledger/internal/platform/config"
	"github.com/SscSPs/cash_ledger/internal/platform/lock"
	"github.com/SscSPs/cash_ledger/internal/platform/txscope"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// 2024-04-01 is a Monday.
var day0 = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

const (
	accountID = "acc_1"
	currency  = "USD"
)

var customer = domain.NewUserActor(accountID)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// MockNotifier is a mock type for the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyWithdrawal(ctx context.Context, cio domain.CashInOut) error {
	args := m.Called(ctx, cio)
	return args.Error(0)
}

// ledgerSuite wires the real services over the in-memory store.
type ledgerSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	scope    *txscope.Scope
	clock    *calendar.Clock
	notifier *MockNotifier
	svc      *portssvc.ServiceContainer
}

func (s *ledgerSuite) SetupTest() {
	s.setup(nil)
}

// setup builds the container; wrap, when set, decorates the transaction manager.
func (s *ledgerSuite) setup(wrap func(portsrepo.TransactionManager) portsrepo.TransactionManager) {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.clock = calendar.NewClock(day0, calendar.WithNow(func() time.Time { return day0.Add(9 * time.Hour) }))
	s.notifier = new(MockNotifier)
	s.notifier.On("NotifyWithdrawal", mock.Anything, mock.AnythingOfType("domain.CashInOut")).Return(nil).Maybe()

	repos := memory.NewRepositoryProvider(s.store)
	if wrap != nil {
		repos.TxManager = wrap(repos.TxManager)
	}
	s.scope = txscope.New(lock.NewRegistry(), repos.TxManager)
	cfg := &config.Config{SelfBankRef: "SELF-001", WithdrawEventOffset: 1, WithdrawValueOffset: 3}
	s.svc = services.NewServiceContainer(cfg, repos, s.scope, s.clock, s.notifier)
}

func (s *ledgerSuite) advance(days int) {
	for i := 0; i < days; i++ {
		s.clock.Advance(s.ctx)
	}
}

func (s *ledgerSuite) seedBalance(amount string) {
	b := domain.NewCashBalance("seed-"+amount, accountID, currency, dec(amount), s.clock.Now())
	s.Require().NoError(s.store.CashBalances().SaveCashBalance(s.ctx, b))
}

func (s *ledgerSuite) balance() decimal.Decimal {
	b, err := s.store.CashBalances().FindLatestCashBalance(s.ctx, accountID, currency)
	if errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero
	}
	s.Require().NoError(err)
	return b.Amount
}

func (s *ledgerSuite) cio(id string) *domain.CashInOut {
	cio, err := s.store.CashInOuts().FindCashInOutByID(s.ctx, id)
	s.Require().NoError(err)
	return cio
}

func (s *ledgerSuite) cashflow(id string) *domain.Cashflow {
	cf, err := s.store.Cashflows().FindCashflowByID(s.ctx, id)
	s.Require().NoError(err)
	return cf
}

func (s *ledgerSuite) withdraw(amount string) *domain.CashInOut {
	cio, err := s.svc.CashInOut.Withdraw(s.ctx, customer, domain.RegCashInOut{
		AccountID: accountID, Currency: currency, AbsAmount: dec(amount), TargetBankRef: "BANK-9",
	})
	s.Require().NoError(err)
	return cio
}

func (s *ledgerSuite) requireWarn(err error, message string) {
	s.T().Helper()
	verr, ok := apperrors.AsValidation(err)
	s.Require().True(ok, "expected validation error, got %v", err)
	s.True(verr.HasMessage(message), "expected %s in %v", message, verr.Warns)
}

// inTx runs fn in a locked transaction on the test account.
func (s *ledgerSuite) inTx(fn func(ctx context.Context, store portsrepo.Store) error) error {
	return s.scope.RunLocked(s.ctx, accountID, lock.Write, fn)
}

// --- fault injection ---

var (
	errInjected         = errors.New("injected store failure")
	errInjectedRecovery = errors.New("injected recovery failure")
)

// faultyTxManager fails cash-in-out updates for one ID. panicID panics instead.
type faultyTxManager struct {
	inner        portsrepo.TransactionManager
	failID       string
	panicID      string
	failRecovery bool
}

func (m *faultyTxManager) Begin(ctx context.Context) (portsrepo.Tx, error) {
	tx, err := m.inner.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &faultyTx{Tx: tx, m: m}, nil
}

type faultyTx struct {
	portsrepo.Tx
	m *faultyTxManager
}

func (t *faultyTx) CashInOuts() portsrepo.CashInOutRepository {
	return &faultyCashInOuts{CashInOutRepository: t.Tx.CashInOuts(), m: t.m}
}

type faultyCashInOuts struct {
	portsrepo.CashInOutRepository
	m *faultyTxManager
}

func (r *faultyCashInOuts) UpdateCashInOut(ctx context.Context, cio domain.CashInOut) error {
	if cio.CashInOutID == r.m.panicID && cio.Status == domain.StatusProcessed {
		panic("store exploded")
	}
	if cio.CashInOutID == r.m.failID {
		switch cio.Status {
		case domain.StatusProcessed:
			return errInjected
		case domain.StatusError:
			if r.m.failRecovery {
				return errInjectedRecovery
			}
		}
	}
	return r.CashInOutRepository.UpdateCashInOut(ctx, cio)
}
