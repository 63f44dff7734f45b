package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cashlog/internal/common"
	"github.com/dmitrijs2005/cashlog/internal/dbx"
	"github.com/dmitrijs2005/cashlog/internal/server/models"
)

// PostgresRepository implements account storage over a dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context) (*models.Account, error) {
	query := `
		INSERT INTO account (id, created, modified)
		VALUES (nextval('account_seq'), $1, $2)
		RETURNING id
	`
	now := time.Now().UTC()
	account := &models.Account{Created: now, Modified: now}
	if err := r.db.QueryRowContext(ctx, query, now, now).Scan(&account.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

func (r *PostgresRepository) AddEmail(ctx context.Context, accountID int64, email string) error {
	query := `
		INSERT INTO account_email (id, account, email, created, modified)
		VALUES (nextval('account_email_seq'), $1, $2, $3, $4)
	`
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query, accountID, email, now, now); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindIDByEmail(ctx context.Context, email string) (int64, error) {
	query := `
		SELECT account FROM account_email
		WHERE email = $1
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Info(ctx context.Context, accountID int64) (*models.AccountInfo, error) {
	query := `
		SELECT created, modified FROM account
		WHERE id = $1
	`
	info := &models.AccountInfo{}
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&info.Created, &info.Modified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return info, nil
}

func (r *PostgresRepository) Emails(ctx context.Context, accountID int64) ([]string, error) {
	query := `
		SELECT email FROM account_email
		WHERE account = $1
		ORDER BY email
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		result = append(result, email)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
