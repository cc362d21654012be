package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/gateway"
	"github.com/rs/zerolog/log"
)

type TransferInput struct {
	SourceAccountID          string
	DestinationAccountNumber string
	Amount                   int64 // centavos
}

type TransferOutput struct {
	NewSourceBalance int64
}

// TransferUseCase move dinheiro entre duas contas sem transação distribuída:
// débito condicional na origem, crédito condicional no destino, e compensação
// se o crédito falhar depois do débito. A soma origem+destino é invariante em
// qualquer desfecho terminal; o único estado transitório tolerado é "origem
// debitada, destino ainda não creditado", e ele é sempre resolvido
// (compensado ou concluído) antes do retorno.
type TransferUseCase struct {
	accounts  gateway.AccountStore
	txLog     gateway.TransactionLog
	publisher gateway.EventPublisher
}

func NewTransfer(accounts gateway.AccountStore, txLog gateway.TransactionLog, publisher gateway.EventPublisher) *TransferUseCase {
	return &TransferUseCase{accounts: accounts, txLog: txLog, publisher: publisher}
}

func (u *TransferUseCase) Execute(ctx context.Context, input TransferInput) (*TransferOutput, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	source, err := u.accounts.GetByID(ctx, input.SourceAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("falha ao ler conta de origem: %w", err)
	}

	if source.AccountNumber == input.DestinationAccountNumber {
		return nil, domain.ErrSelfTransfer
	}
	if !source.HasSufficientFunds(input.Amount) {
		return nil, domain.ErrInsufficientFunds
	}

	dest, err := u.accounts.GetByNumber(ctx, input.DestinationAccountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("falha ao buscar conta de destino: %w", err)
	}

	// Passo 1: débito condicional na origem. Qualquer falha aqui aborta a
	// transferência inteira sem nenhum efeito colateral.
	newSourceBalance, err := u.debitSource(ctx, source, input.Amount)
	if err != nil {
		return nil, err
	}

	// A partir daqui a origem já foi debitada: a operação precisa chegar a um
	// desfecho terminal mesmo que o chamador cancele o contexto. Cancelamento
	// "fire-and-forget" depois do débito deixaria os livros no estado
	// transitório proibido.
	ctx = context.WithoutCancel(ctx)

	// Passo 2: crédito condicional no destino.
	newDestBalance, err := u.creditDestination(ctx, dest.ID, input.Amount)
	if err != nil {
		// Passo 3: compensação — devolve o valor à origem.
		return nil, u.compensate(ctx, source.ID, input.Amount, err)
	}

	// Passo 4: registra os dois lados do movimento. Best-effort monitorado:
	// falha de append não desfaz o dinheiro já movido.
	appendMovement(ctx, u.txLog, u.publisher,
		newTransaction(source.ID, domain.TypeTransferOut, input.Amount, newSourceBalance,
			strPtr(dest.AccountNumber), strPtr("Transfer to "+dest.AccountNumber)))
	appendMovement(ctx, u.txLog, u.publisher,
		newTransaction(dest.ID, domain.TypeTransferIn, input.Amount, newDestBalance,
			strPtr(source.AccountNumber), strPtr("Transfer from "+source.AccountNumber)))

	publishEvent(ctx, u.publisher, "transaction.completed", map[string]interface{}{
		"source_account_id":      source.ID,
		"destination_account_id": dest.ID,
		"amount":                 input.Amount,
	})

	return &TransferOutput{NewSourceBalance: newSourceBalance}, nil
}

// debitSource tenta o débito sobre o snapshot já lido; em conflito relê a
// conta e revalida o saldo antes de tentar de novo.
func (u *TransferUseCase) debitSource(ctx context.Context, source *domain.Account, amount int64) (int64, error) {
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if attempt > 0 {
			fresh, err := u.accounts.GetByID(ctx, source.ID)
			if err != nil {
				return 0, fmt.Errorf("falha ao reler conta de origem: %w", err)
			}
			source = fresh
		}

		if !source.HasSufficientFunds(amount) {
			return 0, domain.ErrInsufficientFunds
		}

		newBalance := source.Balance - amount
		ok, err := u.accounts.CompareAndSetBalance(ctx, source.ID, source.Balance, newBalance)
		if err != nil {
			return 0, fmt.Errorf("falha ao debitar origem: %w", err)
		}
		if ok {
			return newBalance, nil
		}
	}
	return 0, domain.ErrConflict
}

func (u *TransferUseCase) creditDestination(ctx context.Context, destID string, amount int64) (int64, error) {
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		dest, err := u.accounts.GetByID(ctx, destID)
		if err != nil {
			return 0, fmt.Errorf("falha ao reler conta de destino: %w", err)
		}

		newBalance := dest.Balance + amount
		ok, err := u.accounts.CompareAndSetBalance(ctx, destID, dest.Balance, newBalance)
		if err != nil {
			return 0, fmt.Errorf("falha ao creditar destino: %w", err)
		}
		if ok {
			return newBalance, nil
		}
	}
	return 0, domain.ErrConflict
}

// compensate devolve o débito à origem depois de uma falha no crédito do
// destino. Se a própria compensação falhar, o estado vira caso de
// reconciliação manual: o erro carrega o detalhe e é publicado no canal de
// operação antes do retorno — nunca descartado em silêncio.
func (u *TransferUseCase) compensate(ctx context.Context, sourceID string, amount int64, creditErr error) error {
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		source, err := u.accounts.GetByID(ctx, sourceID)
		if err != nil {
			continue
		}

		ok, err := u.accounts.CompareAndSetBalance(ctx, sourceID, source.Balance, source.Balance+amount)
		if err == nil && ok {
			log.Warn().
				Str("account_id", sourceID).
				Int64("amount", amount).
				Msg("Crédito no destino falhou; origem compensada")
			return fmt.Errorf("falha no crédito do destino (origem compensada): %w", creditErr)
		}
	}

	recErr := &domain.ReconciliationError{
		AccountID:      sourceID,
		Amount:         amount,
		AttemptedState: "source debited, destination not credited, compensation failed",
		Cause:          creditErr,
	}
	log.Error().
		Str("account_id", sourceID).
		Int64("amount", amount).
		Str("attempted_state", recErr.AttemptedState).
		Msg("Compensação falhou; reconciliação manual necessária")

	publishEvent(ctx, u.publisher, "ledger.reconciliation_required", map[string]interface{}{
		"account_id":      sourceID,
		"amount":          amount,
		"attempted_state": recErr.AttemptedState,
		"cause":           creditErr.Error(),
	})
	return recErr
}
