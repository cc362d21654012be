package middleware

import (
	"context"
	"net/http"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/gateway"
	"github.com/rs/zerolog/log"
)

type contextKey string

const sessionKey contextKey = "session"

// Session resolve o token do terminal para a sessão gravada no Redis e a
// injeta no contexto da requisição. Sem sessão válida, nada de dinheiro.
func Session(store gateway.SessionRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Session-Token")
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Sessão ausente")
				return
			}

			session, err := store.Get(r.Context(), token)
			if err != nil {
				log.Error().Err(err).Msg("Falha ao buscar sessão")
				writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
				return
			}
			if session == nil {
				writeError(w, http.StatusUnauthorized, "Sessão expirada")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// WithSession injeta a sessão no contexto da requisição.
func WithSession(ctx context.Context, session *gateway.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext recupera a sessão injetada pelo middleware.
func SessionFromContext(ctx context.Context) (*gateway.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*gateway.Session)
	return session, ok
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(`{"error":"` + message + `"}`)); err != nil {
		log.Error().Err(err).Msg("Falha ao escrever resposta de erro")
	}
}
