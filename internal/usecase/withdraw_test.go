package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
)

// Conta em 500.00, saque de 200.00: saldo 300.00 e um registro com snapshot.
func TestWithdrawSuccess(t *testing.T) {
	store := newMemStore(&domain.Account{ID: "acc-1", AccountNumber: "1111222233334444", Balance: 50000})
	uc := NewWithdraw(store, store, nil)

	output, err := uc.Execute(context.Background(), WithdrawInput{AccountID: "acc-1", Amount: 20000})
	if err != nil {
		t.Fatalf("Execute() err = %v", err)
	}
	if output.NewBalance != 30000 {
		t.Fatalf("NewBalance = %d, esperava 30000", output.NewBalance)
	}

	logs := store.logsOf("acc-1")
	if len(logs) != 1 {
		t.Fatalf("len(logs) = %d, esperava 1", len(logs))
	}
	tx := logs[0]
	if tx.Type != domain.TypeWithdrawal || tx.Amount != 20000 || tx.BalanceAfter != 30000 {
		t.Fatalf("transação inesperada: %+v", tx)
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	store := newMemStore(&domain.Account{ID: "acc-1", AccountNumber: "1111222233334444", Balance: 30000})
	uc := NewWithdraw(store, store, nil)

	_, err := uc.Execute(context.Background(), WithdrawInput{AccountID: "acc-1", Amount: 99999})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("esperava ErrInsufficientFunds, veio %v", err)
	}
	if got := store.balanceOf("acc-1"); got != 30000 {
		t.Fatalf("saldo mudou para %d, deveria permanecer 30000", got)
	}
	if logs := store.logsOf("acc-1"); len(logs) != 0 {
		t.Fatalf("nenhuma transação deveria ser gravada, veio %d", len(logs))
	}
}

func TestWithdrawInvalidAmount(t *testing.T) {
	store := newMemStore(&domain.Account{ID: "acc-1", AccountNumber: "1111222233334444", Balance: 30000})
	uc := NewWithdraw(store, store, nil)

	for _, amount := range []int64{0, -1} {
		if _, err := uc.Execute(context.Background(), WithdrawInput{AccountID: "acc-1", Amount: amount}); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("amount=%d: esperava ErrInvalidAmount, veio %v", amount, err)
		}
	}
}

// Dois saques concorrentes, cada um válido contra o saldo inicial mas cuja
// soma o excede: exatamente um vence; o outro releu o saldo e foi rejeitado.
// Nunca os dois — isso deixaria o saldo negativo.
func TestConcurrentWithdrawalsSingleWinner(t *testing.T) {
	store := newMemStore(&domain.Account{ID: "acc-1", AccountNumber: "1111222233334444", Balance: 50000})
	uc := NewWithdraw(store, store, nil)

	results := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer wg.Done()
			_, results[i] = uc.Execute(context.Background(), WithdrawInput{AccountID: "acc-1", Amount: 40000})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrInsufficientFunds) || errors.Is(err, domain.ErrConflict):
			// desfecho esperado para o perdedor
		default:
			t.Fatalf("erro inesperado: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("successes = %d, esperava exatamente 1", successes)
	}
	if got := store.balanceOf("acc-1"); got != 10000 {
		t.Fatalf("saldo final = %d, esperava 10000", got)
	}
	if logs := store.logsOf("acc-1"); len(logs) != 1 {
		t.Fatalf("len(logs) = %d, esperava 1 (só o saque vencedor)", len(logs))
	}
}
