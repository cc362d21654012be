package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
)

// mockAccountStore é o mock campo-função para injetar falhas pontuais.
type mockAccountStore struct {
	GetByNumberFunc          func(ctx context.Context, accountNumber string) (*domain.Account, error)
	GetByIDFunc              func(ctx context.Context, id string) (*domain.Account, error)
	CompareAndSetBalanceFunc func(ctx context.Context, id string, expectedBalance, newBalance int64) (bool, error)
}

func (m *mockAccountStore) GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, accountNumber)
	}
	return nil, domain.ErrAccountNotFound
}

func (m *mockAccountStore) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrAccountNotFound
}

func (m *mockAccountStore) CompareAndSetBalance(ctx context.Context, id string, expectedBalance, newBalance int64) (bool, error) {
	if m.CompareAndSetBalanceFunc != nil {
		return m.CompareAndSetBalanceFunc(ctx, id, expectedBalance, newBalance)
	}
	return false, nil
}

type publishedEvent struct {
	exchange   string
	routingKey string
	body       interface{}
}

// mockPublisher grava os eventos publicados para inspeção.
type mockPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (m *mockPublisher) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, publishedEvent{exchange: exchange, routingKey: routingKey, body: body})
	return nil
}

func (m *mockPublisher) byRoutingKey(key string) []publishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []publishedEvent
	for _, e := range m.events {
		if e.routingKey == key {
			out = append(out, e)
		}
	}
	return out
}

// memStore é Account Store + Transaction Log em memória, fiel ao contrato da
// escrita condicional (CAS sob mutex). Serve aos testes de concorrência,
// conservação e replay sem precisar de Postgres.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account // por id
	byNumber map[string]string          // account_number -> id
	logs     map[string][]domain.Transaction

	appendErr error // quando setado, Append falha (simula log fora do ar)
}

func newMemStore(accounts ...*domain.Account) *memStore {
	s := &memStore{
		accounts: make(map[string]*domain.Account),
		byNumber: make(map[string]string),
		logs:     make(map[string][]domain.Transaction),
	}
	for _, a := range accounts {
		cp := *a
		s.accounts[a.ID] = &cp
		s.byNumber[a.AccountNumber] = a.ID
	}
	return s
}

func (s *memStore) GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byNumber[accountNumber]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *s.accounts[id]
	return &cp, nil
}

func (s *memStore) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *memStore) CompareAndSetBalance(ctx context.Context, id string, expectedBalance, newBalance int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return false, domain.ErrAccountNotFound
	}
	if a.Balance != expectedBalance {
		return false, nil
	}
	a.Balance = newBalance
	a.UpdatedAt = time.Now()
	return true, nil
}

func (s *memStore) Append(ctx context.Context, tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.logs[tx.AccountID] = append(s.logs[tx.AccountID], *tx)
	return nil
}

func (s *memStore) ListRecent(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.logs[accountID]
	n := len(all)
	if limit > n {
		limit = n
	}
	out := make([]domain.Transaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (s *memStore) balanceOf(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id].Balance
}

func (s *memStore) logsOf(id string) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, len(s.logs[id]))
	copy(out, s.logs[id])
	return out
}
