package gateway

import (
	"context"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
)

// TransactionLog é o registro durável e append-only de movimentos confirmados.
type TransactionLog interface {
	Append(ctx context.Context, tx *domain.Transaction) error

	// ListRecent retorna os movimentos mais recentes primeiro.
	// Conta sem movimentos retorna slice vazio, não erro.
	ListRecent(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)
}
