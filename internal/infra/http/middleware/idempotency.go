package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/gateway"
	"github.com/rs/zerolog/log"
)

// responseRecorder grava o que o handler escreve, para reaproveitar a resposta.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotency repete a resposta gravada quando o terminal reenviar a mesma
// Idempotency-Key — um saque reenviado por timeout não debita duas vezes.
func Idempotency(store gateway.IdempotencyRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()

			cached, err := store.Get(ctx, key)
			if err != nil {
				// Redis fora do ar não pode travar o terminal: fail open.
				log.Error().Err(err).Msg("Falha ao buscar chave de idempotência")
				next.ServeHTTP(w, r)
				return
			}

			if cached != nil {
				log.Info().Str("key", key).Msg("Idempotency cache hit")
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotency-Hit", "true")
				w.WriteHeader(cached.StatusCode)
				if _, err := w.Write(cached.Body); err != nil {
					log.Error().Err(err).Msg("Falha ao escrever resposta cacheada")
				}
				return
			}

			recorder := &responseRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				body:           &bytes.Buffer{},
			}
			next.ServeHTTP(recorder, r)

			// 5xx fica de fora do cache para permitir retry de verdade.
			if recorder.statusCode < 500 {
				err := store.Save(ctx, key, gateway.CachedResponse{
					StatusCode: recorder.statusCode,
					Body:       recorder.body.Bytes(),
				}, 24*time.Hour)
				if err != nil {
					log.Error().Err(err).Msg("Falha ao salvar chave de idempotência")
				}
			}
		})
	}
}
