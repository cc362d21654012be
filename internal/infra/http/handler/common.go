package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/rs/zerolog/log"
)

// Helpers para resposta JSON
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Falha ao codificar resposta JSON")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondLedgerError mapeia a taxonomia de erros do ledger para HTTP.
// O usuário vê mensagens curtas; detalhe interno fica no log e, para
// reconciliação, no canal de operação — nunca no corpo da resposta.
func respondLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, "Valor inválido")
	case errors.Is(err, domain.ErrDepositLimitExceeded):
		respondError(w, http.StatusUnprocessableEntity, "Depósito máximo é $10.000,00")
	case errors.Is(err, domain.ErrInsufficientFunds):
		respondError(w, http.StatusUnprocessableEntity, "Saldo insuficiente")
	case errors.Is(err, domain.ErrSelfTransfer):
		respondError(w, http.StatusUnprocessableEntity, "Não é possível transferir para a própria conta")
	case errors.Is(err, domain.ErrRecipientNotFound):
		respondError(w, http.StatusNotFound, "Conta de destino não encontrada")
	case errors.Is(err, domain.ErrAccountNotFound):
		respondError(w, http.StatusNotFound, "Conta não encontrada")
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusConflict, "Operação concorrente, tente novamente")
	case errors.Is(err, domain.ErrReconciliationRequired):
		// Já registrado e publicado pelo usecase; o usuário recebe o genérico.
		log.Error().Err(err).Msg("Transferência terminou em reconciliação manual")
		respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
	default:
		log.Error().Err(err).Msg("Erro interno ao processar operação")
		respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}
