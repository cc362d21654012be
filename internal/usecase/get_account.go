package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/gateway"
)

type GetAccountOutput struct {
	ID            string `json:"id"`
	AccountNumber string `json:"account_number"`
	HolderName    string `json:"holder_name"`
	Balance       string `json:"balance"`
	UpdatedAt     string `json:"updated_at"`
}

// GetAccountUseCase relê o saldo direto do store. Um saldo em cache na tela é
// sempre consultivo; antes de confiar nele para nova operação, relê daqui.
type GetAccountUseCase struct {
	accounts gateway.AccountStore
}

func NewGetAccount(accounts gateway.AccountStore) *GetAccountUseCase {
	return &GetAccountUseCase{accounts: accounts}
}

func (u *GetAccountUseCase) Execute(ctx context.Context, accountID string) (*GetAccountOutput, error) {
	account, err := u.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("falha ao buscar conta: %w", err)
	}

	return &GetAccountOutput{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		HolderName:    account.HolderName,
		Balance:       domain.FormatAmount(account.Balance),
		UpdatedAt:     account.UpdatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
