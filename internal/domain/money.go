package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxDeposit é o teto de um único depósito: $10.000,00 em centavos.
const MaxDeposit int64 = 1_000_000

// ParseAmount converte um valor decimal com até 2 casas ("200.00", "0.5")
// para centavos. Dinheiro nunca passa por float neste sistema.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}

	switch len(fracPart) {
	case 0:
		fracPart = "00"
	case 1:
		fracPart += "0"
	case 2:
	default:
		return 0, ErrInvalidAmount
	}

	// Só dígitos de ambos os lados do ponto: ParseInt sozinho aceitaria
	// sinal no meio ("1.-5") e deixaria passar valor malformado.
	if !allDigits(intPart) || !allDigits(fracPart) {
		return 0, ErrInvalidAmount
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// whole*100+99 precisa caber em int64; acima disso a conta daria volta.
	if whole > (math.MaxInt64-99)/100 {
		return 0, ErrInvalidAmount
	}
	cents, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	return whole*100 + cents, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatAmount formata centavos como decimal de 2 casas ("1234.56").
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
