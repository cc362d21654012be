package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/gateway"
)

type DepositInput struct {
	AccountID string
	Amount    int64 // centavos
}

type DepositOutput struct {
	NewBalance int64
}

// DepositUseCase credita a conta via escrita condicional no Account Store.
type DepositUseCase struct {
	accounts  gateway.AccountStore
	txLog     gateway.TransactionLog
	publisher gateway.EventPublisher
}

func NewDeposit(accounts gateway.AccountStore, txLog gateway.TransactionLog, publisher gateway.EventPublisher) *DepositUseCase {
	return &DepositUseCase{accounts: accounts, txLog: txLog, publisher: publisher}
}

func (u *DepositUseCase) Execute(ctx context.Context, input DepositInput) (*DepositOutput, error) {
	// Validações antes de qualquer mutação: retorno imediato, zero efeito colateral.
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if input.Amount > domain.MaxDeposit {
		return nil, domain.ErrDepositLimitExceeded
	}

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		account, err := u.accounts.GetByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("falha ao ler conta: %w", err)
		}

		// O novo saldo é calculado sobre a MESMA leitura usada na condição
		// da escrita; se outro movimento entrou no meio, a escrita falha e
		// relemos, nunca sobrescrevemos um saldo velho.
		newBalance := account.Balance + input.Amount
		ok, err := u.accounts.CompareAndSetBalance(ctx, account.ID, account.Balance, newBalance)
		if err != nil {
			return nil, fmt.Errorf("falha ao atualizar saldo: %w", err)
		}
		if !ok {
			continue
		}

		appendMovement(ctx, u.txLog, u.publisher,
			newTransaction(account.ID, domain.TypeDeposit, input.Amount, newBalance, nil, strPtr("ATM Deposit")))

		return &DepositOutput{NewBalance: newBalance}, nil
	}

	return nil, domain.ErrConflict
}
