package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/infra/http/middleware"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/usecase"
)

// TransactionHandler expõe as operações de movimento do terminal.
type TransactionHandler struct {
	depositUC  *usecase.DepositUseCase
	withdrawUC *usecase.WithdrawUseCase
	transferUC *usecase.TransferUseCase
}

func NewTransactionHandler(depositUC *usecase.DepositUseCase, withdrawUC *usecase.WithdrawUseCase, transferUC *usecase.TransferUseCase) *TransactionHandler {
	return &TransactionHandler{depositUC: depositUC, withdrawUC: withdrawUC, transferUC: transferUC}
}

// Valores chegam como string decimal ("200.00") e viram centavos no parse;
// float nunca entra no caminho do dinheiro.
type MovementRequest struct {
	Amount string `json:"amount"`
}

type TransferRequest struct {
	Amount           string `json:"amount"`
	RecipientAccount string `json:"recipient_account"`
}

type MovementResponse struct {
	NewBalance string `json:"new_balance"`
}

func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Sessão inválida")
		return
	}

	var req MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Valor inválido")
		return
	}

	output, err := h.depositUC.Execute(r.Context(), usecase.DepositInput{
		AccountID: session.AccountID,
		Amount:    amount,
	})
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, MovementResponse{NewBalance: domain.FormatAmount(output.NewBalance)})
}

func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Sessão inválida")
		return
	}

	var req MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Valor inválido")
		return
	}

	output, err := h.withdrawUC.Execute(r.Context(), usecase.WithdrawInput{
		AccountID: session.AccountID,
		Amount:    amount,
	})
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, MovementResponse{NewBalance: domain.FormatAmount(output.NewBalance)})
}

func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Sessão inválida")
		return
	}

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Valor inválido")
		return
	}

	output, err := h.transferUC.Execute(r.Context(), usecase.TransferInput{
		SourceAccountID:          session.AccountID,
		DestinationAccountNumber: req.RecipientAccount,
		Amount:                   amount,
	})
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, MovementResponse{NewBalance: domain.FormatAmount(output.NewSourceBalance)})
}
