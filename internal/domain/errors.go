package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrInvalidCredential      = errors.New("invalid credential")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrDepositLimitExceeded   = errors.New("deposit limit exceeded")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrSelfTransfer           = errors.New("cannot transfer to the same account")
	ErrRecipientNotFound      = errors.New("recipient account not found")
	ErrConflict               = errors.New("balance changed concurrently")
	ErrReconciliationRequired = errors.New("reconciliation required")
	ErrLogAppendFailed        = errors.New("transaction log append failed")
)

// ReconciliationError descreve um estado que a compensação automática não
// conseguiu corrigir: origem debitada, destino não creditado. Carrega detalhe
// suficiente para a recuperação manual pelo operador.
type ReconciliationError struct {
	AccountID      string
	Amount         int64
	AttemptedState string
	Cause          error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation required: account %s, amount %d, state %q: %v",
		e.AccountID, e.Amount, e.AttemptedState, e.Cause)
}

// Unwrap permite errors.Is(err, ErrReconciliationRequired).
func (e *ReconciliationError) Unwrap() error { return ErrReconciliationRequired }
