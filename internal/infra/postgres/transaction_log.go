package postgres

import (
	"context"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionLog implementa gateway.TransactionLog: tabela append-only,
// ordenada por created_at dentro de cada conta.
type TransactionLog struct {
	db *pgxpool.Pool
}

func NewTransactionLog(pool *pgxpool.Pool) *TransactionLog {
	return &TransactionLog{db: pool}
}

func (l *TransactionLog) Append(ctx context.Context, tx *domain.Transaction) error {
	_, err := l.db.Exec(ctx,
		`INSERT INTO transactions (id, account_id, type, amount, recipient_account, description, balance_after, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tx.ID, tx.AccountID, tx.Type, tx.Amount,
		textOrNull(tx.RecipientAccount), textOrNull(tx.Description),
		tx.BalanceAfter, tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

func (l *TransactionLog) ListRecent(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	rows, err := l.db.Query(ctx,
		`SELECT id, account_id, type, amount, recipient_account, description, balance_after, created_at
		 FROM transactions WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2`,
		accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	out := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		var recipient, description pgtype.Text
		var createdAt pgtype.Timestamptz
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Type, &t.Amount,
			&recipient, &description, &t.BalanceAfter, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if recipient.Valid {
			v := recipient.String
			t.RecipientAccount = &v
		}
		if description.Valid {
			v := description.String
			t.Description = &v
		}
		t.CreatedAt = createdAt.Time
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return out, nil
}

// textOrNull converte *string -> pgtype.Text (NULL quando ausente).
func textOrNull(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}
