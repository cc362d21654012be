package gateway

import (
	"context"
	"time"
)

// Session é o objeto explícito de sessão do terminal: substitui o estado
// global "conta logada" que a camada de apresentação manteria em memória.
// O ledger em si continua stateless; a sessão só resolve token → conta.
type Session struct {
	Token         string    `json:"token"`
	AccountID     string    `json:"account_id"`
	AccountNumber string    `json:"account_number"`
	CreatedAt     time.Time `json:"created_at"`
}

type SessionRepository interface {
	Save(ctx context.Context, session Session, ttl time.Duration) error

	// Get retorna nil (sem erro) quando o token não existe ou expirou.
	Get(ctx context.Context, token string) (*Session, error)

	Delete(ctx context.Context, token string) error
}
