package usecase

import (
	"context"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/gateway"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LedgerExchange é o exchange (tópico) onde os eventos do ledger são publicados.
const LedgerExchange = "ledger_events"

// maxConflictRetries limita as tentativas quando a escrita condicional perde a
// corrida. Esgotado o orçamento, devolvemos ErrConflict e o chamador decide.
const maxConflictRetries = 3

// appendMovement grava o movimento no log de transações.
// Falha de append é advisória: o saldo já foi confirmado e NÃO é revertido.
// A falha vira sinal de monitoração (log estruturado + evento para a operação),
// nunca um erro para o usuário.
func appendMovement(ctx context.Context, txLog gateway.TransactionLog, publisher gateway.EventPublisher, tx *domain.Transaction) {
	if err := txLog.Append(ctx, tx); err != nil {
		log.Error().Err(err).
			Str("account_id", tx.AccountID).
			Str("type", tx.Type).
			Int64("amount", tx.Amount).
			Msg("Falha ao gravar movimento no log de transações (saldo já confirmado)")

		publishEvent(ctx, publisher, "ledger.log_append_failed", map[string]interface{}{
			"account_id":    tx.AccountID,
			"type":          tx.Type,
			"amount":        tx.Amount,
			"balance_after": tx.BalanceAfter,
			"error":         domain.ErrLogAppendFailed.Error(),
		})
	}
}

// publishEvent publica no exchange do ledger; falha de publicação só gera log.
func publishEvent(ctx context.Context, publisher gateway.EventPublisher, routingKey string, body interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, LedgerExchange, routingKey, body); err != nil {
		log.Error().Err(err).Str("routing_key", routingKey).Msg("Falha ao publicar evento do ledger")
	}
}

func newTransaction(accountID, txType string, amount, balanceAfter int64, recipient, description *string) *domain.Transaction {
	return &domain.Transaction{
		ID:               uuid.NewString(),
		AccountID:        accountID,
		Type:             txType,
		Amount:           amount,
		RecipientAccount: recipient,
		Description:      description,
		BalanceAfter:     balanceAfter,
		CreatedAt:        time.Now(),
	}
}

func strPtr(s string) *string { return &s }
