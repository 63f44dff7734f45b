package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cashlog/internal/common"
	"github.com/dmitrijs2005/cashlog/internal/dbx"
)

// PostgresRepository implements session storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, key, name, value string) error {
	query := `
		INSERT INTO session (id, key, name, value, created, modified)
		VALUES (nextval('session_seq'), $1, $2, $3, $4, $5)
		ON CONFLICT (key, name)
		DO UPDATE SET value = EXCLUDED.value, modified = EXCLUDED.modified
	`
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query, key, name, value, now, now); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, key, name string) (string, error) {
	query := `
		SELECT value FROM session
		WHERE key = $1 AND name = $2
	`
	var value string
	if err := r.db.QueryRowContext(ctx, query, key, name).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return value, nil
}

func (r *PostgresRepository) DeleteByKey(ctx context.Context, key string) error {
	query := `
		DELETE FROM session
		WHERE key = $1
	`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
