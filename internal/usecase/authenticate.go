package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/gateway"
)

type AuthenticateInput struct {
	AccountNumber string
	PIN           string
}

type AuthenticateOutput struct {
	AccountID     string
	AccountNumber string
	HolderName    string
	Balance       int64
}

// AuthenticateUseCase valida número de conta + PIN contra o Account Store.
// Operação somente leitura: nenhum efeito colateral.
type AuthenticateUseCase struct {
	accounts gateway.AccountStore
}

func NewAuthenticate(accounts gateway.AccountStore) *AuthenticateUseCase {
	return &AuthenticateUseCase{accounts: accounts}
}

func (u *AuthenticateUseCase) Execute(ctx context.Context, input AuthenticateInput) (*AuthenticateOutput, error) {
	account, err := u.accounts.GetByNumber(ctx, input.AccountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("falha ao buscar conta: %w", err)
	}

	if !account.CheckPIN(input.PIN) {
		return nil, domain.ErrInvalidCredential
	}

	return &AuthenticateOutput{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		HolderName:    account.HolderName,
		Balance:       account.Balance,
	}, nil
}
