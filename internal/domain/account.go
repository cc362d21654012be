package domain

import (
	"crypto/subtle"
	"time"
)

// Account representa a conta bancária do ponto de vista do ledger.
// Clean Architecture: esta entidade não sabe o que é JSON nem SQL.
type Account struct {
	ID            string
	AccountNumber string // 16 dígitos, chave de login e de destino de transferência
	PIN           string // credencial de 4 dígitos, opaca para o ledger além da comparação
	HolderName    string
	Balance       int64 // em centavos, nunca float
	UpdatedAt     time.Time
}

// CheckPIN compara a credencial em tempo constante.
// Em produção o PIN seria armazenado com hash; aqui é uma credencial de demonstração.
func (a *Account) CheckPIN(pin string) bool {
	return subtle.ConstantTimeCompare([]byte(a.PIN), []byte(pin)) == 1
}

// HasSufficientFunds valida se a conta pode pagar antes mesmo de tocar no banco.
func (a *Account) HasSufficientFunds(amount int64) bool {
	return a.Balance >= amount
}
