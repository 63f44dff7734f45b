package bankaccounts

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cashlog/internal/dbx"
	"github.com/dmitrijs2005/cashlog/internal/server/models"
)

// PostgresRepository implements bank-account storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, accountID int64, name, currency string) error {
	query := `
		INSERT INTO bank_account (id, account, name, currency, deleted, created, modified)
		VALUES (nextval('bank_account_seq'), $1, $2, $3, false, $4, $5)
	`
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query, accountID, name, currency, now, now); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, accountID int64) ([]models.BankAccount, error) {
	query := `
		SELECT id, account, name, currency FROM bank_account
		WHERE account = $1 AND deleted = false
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.BankAccount
	for rows.Next() {
		var item models.BankAccount
		if err := rows.Scan(&item.ID, &item.Account, &item.Name, &item.Currency); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, accountID, bankAccountID int64) error {
	query := `
		UPDATE bank_account SET deleted = true, modified = $3
		WHERE id = $2 AND account = $1 AND deleted = false
	`
	if _, err := r.db.ExecContext(ctx, query, accountID, bankAccountID, time.Now().UTC()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
