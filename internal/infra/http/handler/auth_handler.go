package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/gateway"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/usecase"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// sessionTTL limita quanto tempo o terminal fica logado sem interação.
const sessionTTL = 15 * time.Minute

// AuthHandler cuida do login/logout do terminal.
type AuthHandler struct {
	authenticateUC *usecase.AuthenticateUseCase
	sessions       gateway.SessionRepository
}

func NewAuthHandler(authenticateUC *usecase.AuthenticateUseCase, sessions gateway.SessionRepository) *AuthHandler {
	return &AuthHandler{authenticateUC: authenticateUC, sessions: sessions}
}

type LoginRequest struct {
	AccountNumber string `json:"account_number"`
	PIN           string `json:"pin"`
}

type LoginResponse struct {
	Token         string `json:"token"`
	AccountNumber string `json:"account_number"`
	HolderName    string `json:"holder_name"`
	Balance       string `json:"balance"`
}

// Login valida cartão + PIN e cria a sessão no Redis.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	output, err := h.authenticateUC.Execute(r.Context(), usecase.AuthenticateInput{
		AccountNumber: req.AccountNumber,
		PIN:           req.PIN,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			respondError(w, http.StatusUnauthorized, "Cartão inválido")
		case errors.Is(err, domain.ErrInvalidCredential):
			respondError(w, http.StatusUnauthorized, "PIN inválido")
		default:
			log.Error().Err(err).Msg("Erro interno no login")
			respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
		}
		return
	}

	session := gateway.Session{
		Token:         uuid.NewString(),
		AccountID:     output.AccountID,
		AccountNumber: output.AccountNumber,
		CreatedAt:     time.Now(),
	}
	if err := h.sessions.Save(r.Context(), session, sessionTTL); err != nil {
		log.Error().Err(err).Msg("Falha ao criar sessão")
		respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	respondJSON(w, http.StatusCreated, LoginResponse{
		Token:         session.Token,
		AccountNumber: output.AccountNumber,
		HolderName:    output.HolderName,
		Balance:       domain.FormatAmount(output.Balance),
	})
}

// Logout descarta a sessão. Idempotente: token desconhecido também responde 204.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Session-Token")
	if token == "" {
		respondError(w, http.StatusBadRequest, "Sessão ausente")
		return
	}
	if err := h.sessions.Delete(r.Context(), token); err != nil {
		log.Error().Err(err).Msg("Falha ao encerrar sessão")
		respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
