package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountStore implementa gateway.AccountStore usando pgx/v5.
type AccountStore struct {
	db *pgxpool.Pool
}

func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{db: pool}
}

const accountColumns = `id, account_number, pin, holder_name, balance, updated_at`

func (s *AccountStore) GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE account_number = $1`, accountNumber)
	return scanAccount(row)
}

func (s *AccountStore) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// CompareAndSetBalance é a escrita condicional: o WHERE compara com o saldo
// lido anteriormente e rows-affected diz se a condição valeu. Sem lock de
// aplicação — o banco decide quem vence a corrida.
func (s *AccountStore) CompareAndSetBalance(ctx context.Context, id string, expectedBalance, newBalance int64) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE accounts SET balance = $1, updated_at = now() WHERE id = $2 AND balance = $3`,
		newBalance, id, expectedBalance)
	if err != nil {
		return false, fmt.Errorf("failed to update balance: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	var updatedAt pgtype.Timestamptz
	err := row.Scan(&a.ID, &a.AccountNumber, &a.PIN, &a.HolderName, &a.Balance, &updatedAt)
	if err != nil {
		// pgx retorna pgx.ErrNoRows, diferente de sql.ErrNoRows
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	a.UpdatedAt = updatedAt.Time
	return &a, nil
}
