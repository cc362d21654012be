package usecase

import (
	"context"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/gateway"
)

// DefaultStatementLimit é quantos movimentos o extrato mostra por padrão.
const DefaultStatementLimit = 5

// StatementUseCase lê o extrato recente. Somente leitura, sem efeitos.
type StatementUseCase struct {
	txLog gateway.TransactionLog
}

func NewStatement(txLog gateway.TransactionLog) *StatementUseCase {
	return &StatementUseCase{txLog: txLog}
}

func (u *StatementUseCase) Execute(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = DefaultStatementLimit
	}

	txs, err := u.txLog.ListRecent(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar extrato: %w", err)
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return txs, nil
}
