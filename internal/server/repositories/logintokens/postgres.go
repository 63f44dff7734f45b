package logintokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cashlog/internal/common"
	"github.com/dmitrijs2005/cashlog/internal/dbx"
)

// PostgresRepository implements login-token storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, accountID int64, token string) error {
	query := `
		INSERT INTO login_token (id, account, token, used, used_ts, created, modified)
		VALUES (nextval('login_token_seq'), $1, $2, false, NULL, $3, $4)
	`
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query, accountID, token, now, now); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindAccount(ctx context.Context, token string) (int64, error) {
	query := `
		SELECT account FROM login_token
		WHERE token = $1 AND used = false
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}
