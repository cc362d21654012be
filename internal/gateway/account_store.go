package gateway

import (
	"context"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
)

// AccountStore define o contrato com a tabela durável de contas.
// O usecase só interage com isso, sem saber se é Postgres ou outro backend.
type AccountStore interface {
	// GetByNumber busca pela chave de login/destino (16 dígitos).
	GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)

	// CompareAndSetBalance é a escrita condicional (concorrência otimista):
	// só aplica newBalance se o saldo armazenado ainda for expectedBalance.
	// Retorna false quando outro movimento venceu a corrida — o chamador
	// relê o saldo e tenta de novo, nunca sobrescreve um valor velho.
	CompareAndSetBalance(ctx context.Context, id string, expectedBalance, newBalance int64) (bool, error)
}
