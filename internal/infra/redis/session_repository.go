package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/gateway"
	"github.com/redis/go-redis/v9"
)

// SessionRepository guarda sessões do terminal com TTL.
// O TTL faz o "logout automático" do terminal: sessão some, usuário reloga.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Save(ctx context.Context, session gateway.Session, ttl time.Duration) error {
	bytes, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, "session:"+session.Token, bytes, ttl).Err()
}

func (r *SessionRepository) Get(ctx context.Context, token string) (*gateway.Session, error) {
	val, err := r.client.Get(ctx, "session:"+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // sessão inexistente ou expirada
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session gateway.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, "session:"+token).Err()
}
