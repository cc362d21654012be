package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/gateway"
)

type WithdrawInput struct {
	AccountID string
	Amount    int64 // centavos
}

type WithdrawOutput struct {
	NewBalance int64
}

// WithdrawUseCase debita a conta mantendo o invariante de saldo não negativo.
type WithdrawUseCase struct {
	accounts  gateway.AccountStore
	txLog     gateway.TransactionLog
	publisher gateway.EventPublisher
}

func NewWithdraw(accounts gateway.AccountStore, txLog gateway.TransactionLog, publisher gateway.EventPublisher) *WithdrawUseCase {
	return &WithdrawUseCase{accounts: accounts, txLog: txLog, publisher: publisher}
}

func (u *WithdrawUseCase) Execute(ctx context.Context, input WithdrawInput) (*WithdrawOutput, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		account, err := u.accounts.GetByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("falha ao ler conta: %w", err)
		}

		// A checagem de saldo vale para ESTA leitura; a escrita condicional
		// garante que ninguém mudou o saldo entre a checagem e o update.
		if !account.HasSufficientFunds(input.Amount) {
			return nil, domain.ErrInsufficientFunds
		}

		newBalance := account.Balance - input.Amount
		ok, err := u.accounts.CompareAndSetBalance(ctx, account.ID, account.Balance, newBalance)
		if err != nil {
			return nil, fmt.Errorf("falha ao atualizar saldo: %w", err)
		}
		if !ok {
			continue
		}

		appendMovement(ctx, u.txLog, u.publisher,
			newTransaction(account.ID, domain.TypeWithdrawal, input.Amount, newBalance, nil, strPtr("ATM Withdrawal")))

		return &WithdrawOutput{NewBalance: newBalance}, nil
	}

	return nil, domain.ErrConflict
}
