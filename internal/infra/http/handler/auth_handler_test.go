package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/gateway"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/usecase"
)

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]gateway.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]gateway.Session)}
}

func (r *fakeSessionRepo) Save(ctx context.Context, session gateway.Session, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = session
	return nil
}

func (r *fakeSessionRepo) Get(ctx context.Context, token string) (*gateway.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

func newTestAuthHandler(sessions *fakeSessionRepo, accounts ...*domain.Account) *AuthHandler {
	store := newFakeLedgerStore(accounts...)
	return NewAuthHandler(usecase.NewAuthenticate(store), sessions)
}

func doLogin(t *testing.T, h *AuthHandler, accountNumber, pin string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(LoginRequest{AccountNumber: accountNumber, PIN: pin})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestLoginSuccess(t *testing.T) {
	sessions := newFakeSessionRepo()
	h := newTestAuthHandler(sessions, &domain.Account{
		ID:            "acc-1",
		AccountNumber: "1234567812345678",
		PIN:           "1234",
		HolderName:    "Maria Silva",
		Balance:       50000,
	})

	rec := doLogin(t, h, "1234567812345678", "1234")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, esperava 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("token não deveria ser vazio")
	}
	if resp.Balance != "500.00" {
		t.Fatalf("balance = %q, esperava \"500.00\"", resp.Balance)
	}
	if resp.HolderName != "Maria Silva" {
		t.Fatalf("holder_name = %q", resp.HolderName)
	}

	saved, err := sessions.Get(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("Get() err = %v", err)
	}
	if saved == nil || saved.AccountID != "acc-1" {
		t.Fatalf("sessão não foi gravada: %+v", saved)
	}
}

func TestLoginWrongPIN(t *testing.T) {
	h := newTestAuthHandler(newFakeSessionRepo(), &domain.Account{
		ID:            "acc-1",
		AccountNumber: "1234567812345678",
		PIN:           "1234",
		Balance:       50000,
	})

	rec := doLogin(t, h, "1234567812345678", "4321")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, esperava 401", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["error"] != "PIN inválido" {
		t.Fatalf("mensagem = %q", resp["error"])
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	h := newTestAuthHandler(newFakeSessionRepo())

	rec := doLogin(t, h, "0000000000000000", "1234")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, esperava 401", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["error"] != "Cartão inválido" {
		t.Fatalf("mensagem = %q", resp["error"])
	}
}

func TestLogout(t *testing.T) {
	sessions := newFakeSessionRepo()
	if err := sessions.Save(context.Background(), gateway.Session{Token: "tok-1", AccountID: "acc-1"}, time.Minute); err != nil {
		t.Fatalf("Save() err = %v", err)
	}
	h := newTestAuthHandler(sessions)

	req := httptest.NewRequest(http.MethodDelete, "/sessions", nil)
	req.Header.Set("X-Session-Token", "tok-1")
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, esperava 204", rec.Code)
	}
	saved, err := sessions.Get(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Get() err = %v", err)
	}
	if saved != nil {
		t.Fatal("sessão deveria ter sido removida")
	}
}
