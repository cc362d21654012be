package gateway

import (
	"context"
	"time"
)

// CachedResponse é a resposta HTTP gravada para repetição idempotente.
type CachedResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string][]string
}

// IdempotencyRepository guarda respostas por Idempotency-Key, para que um
// terminal que repete a requisição (timeout, retry) não mova dinheiro duas vezes.
type IdempotencyRepository interface {
	// Get retorna nil (sem erro) em cache miss.
	Get(ctx context.Context, key string) (*CachedResponse, error)

	Save(ctx context.Context, key string, response CachedResponse, ttl time.Duration) error
}
