// Package memory is an in-process store used when no database is configured
// and by service tests. Transactions buffer their writes and publish them on Commit.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
)

type tables struct {
	balances  map[string]domain.CashBalance
	cashflows map[string]domain.Cashflow
	cios      map[string]domain.CashInOut
}

func newTables() *tables {
	return &tables{
		balances:  map[string]domain.CashBalance{},
		cashflows: map[string]domain.Cashflow{},
		cios:      map[string]domain.CashInOut{},
	}
}

// Store holds committed rows.
type Store struct {
	mu   sync.RWMutex
	base *tables
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{base: newTables()}
}

// NewRepositoryProvider wires the store into the persistence ports.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{TxManager: s, Reader: s}
}

var (
	_ portsrepo.TransactionManager = (*Store)(nil)
	_ portsrepo.Store              = (*Store)(nil)
	_ portsrepo.Tx                 = (*tx)(nil)
)

// Begin starts a transaction. Its writes are invisible to others until Commit.
func (s *Store) Begin(_ context.Context) (portsrepo.Tx, error) {
	return &tx{session: session{store: s, pending: newTables()}}, nil
}

// CashBalances returns a repository writing straight to committed state.
func (s *Store) CashBalances() portsrepo.CashBalanceRepository { return s.direct() }

// Cashflows returns a repository writing straight to committed state.
func (s *Store) Cashflows() portsrepo.CashflowRepository { return s.direct() }

// CashInOuts returns a repository writing straight to committed state.
func (s *Store) CashInOuts() portsrepo.CashInOutRepository { return s.direct() }

func (s *Store) direct() *session {
	return &session{store: s}
}

type tx struct {
	session
	done bool
}

func (t *tx) CashBalances() portsrepo.CashBalanceRepository { return &t.session }
func (t *tx) Cashflows() portsrepo.CashflowRepository       { return &t.session }
func (t *tx) CashInOuts() portsrepo.CashInOutRepository     { return &t.session }

func (t *tx) Commit(_ context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for id, v := range t.pending.balances {
		t.store.base.balances[id] = v
	}
	for id, v := range t.pending.cashflows {
		t.store.base.cashflows[id] = v
	}
	for id, v := range t.pending.cios {
		t.store.base.cios[id] = v
	}
	t.pending = newTables()
	return nil
}

func (t *tx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.pending = newTables()
	return nil
}

// session reads committed rows overlaid with pending ones. A nil pending set
// writes through to committed state.
type session struct {
	store   *Store
	pending *tables
}

func (s *session) write(fn func(t *tables)) {
	if s.pending != nil {
		fn(s.pending)
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	fn(s.store.base)
}

// rows returns the merged view of one table.
func rows[T any](s *session, pick func(*tables) map[string]T) map[string]T {
	s.store.mu.RLock()
	merged := make(map[string]T, len(pick(s.store.base)))
	for id, v := range pick(s.store.base) {
		merged[id] = v
	}
	s.store.mu.RUnlock()

	if s.pending != nil {
		for id, v := range pick(s.pending) {
			merged[id] = v
		}
	}
	return merged
}

func row[T any](s *session, pick func(*tables) map[string]T, id string) (T, bool) {
	if s.pending != nil {
		if v, ok := pick(s.pending)[id]; ok {
			return v, true
		}
	}
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	v, ok := pick(s.store.base)[id]
	return v, ok
}

func balancesOf(t *tables) map[string]domain.CashBalance { return t.balances }
func cashflowsOf(t *tables) map[string]domain.Cashflow   { return t.cashflows }
func ciosOf(t *tables) map[string]domain.CashInOut       { return t.cios }
