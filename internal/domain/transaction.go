package domain

import "time"

// Tipos de movimento registrados no extrato.
const (
	TypeDeposit     = "deposit"
	TypeWithdrawal  = "withdrawal"
	TypeTransferIn  = "transfer_in"
	TypeTransferOut = "transfer_out"
)

// Transaction é o registro imutável de um movimento já confirmado.
// Append-only: nunca é alterado nem removido depois de gravado.
// RecipientAccount só existe para transfer_in/transfer_out.
type Transaction struct {
	ID               string
	AccountID        string
	Type             string
	Amount           int64 // sempre positivo, em centavos
	RecipientAccount *string
	Description      *string
	BalanceAfter     int64 // snapshot do saldo logo após o commit deste movimento
	CreatedAt        time.Time
}
