package handler

import (
	"net/http"
	"strconv"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/infra/http/middleware"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/usecase"
)

// AccountHandler expõe saldo e extrato da conta logada.
type AccountHandler struct {
	getAccountUC *usecase.GetAccountUseCase
	statementUC  *usecase.StatementUseCase
}

func NewAccountHandler(getAccountUC *usecase.GetAccountUseCase, statementUC *usecase.StatementUseCase) *AccountHandler {
	return &AccountHandler{getAccountUC: getAccountUC, statementUC: statementUC}
}

// Balance relê o saldo direto do store (o valor em tela é só consultivo).
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Sessão inválida")
		return
	}

	output, err := h.getAccountUC.Execute(r.Context(), session.AccountID)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, output)
}

type TransactionResponse struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	Amount           string  `json:"amount"`
	RecipientAccount *string `json:"recipient_account,omitempty"`
	Description      *string `json:"description,omitempty"`
	BalanceAfter     string  `json:"balance_after"`
	CreatedAt        string  `json:"created_at"`
}

// Statement retorna os últimos movimentos, mais recente primeiro.
func (h *AccountHandler) Statement(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Sessão inválida")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "Limite inválido")
			return
		}
		limit = n
	}

	txs, err := h.statementUC.Execute(r.Context(), session.AccountID, limit)
	if err != nil {
		respondLedgerError(w, err)
		return
	}

	out := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, TransactionResponse{
			ID:               t.ID,
			Type:             t.Type,
			Amount:           domain.FormatAmount(t.Amount),
			RecipientAccount: t.RecipientAccount,
			Description:      t.Description,
			BalanceAfter:     domain.FormatAmount(t.BalanceAfter),
			CreatedAt:        t.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	respondJSON(w, http.StatusOK, out)
}
