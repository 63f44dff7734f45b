package entries

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

// PostgresRepository implements entry storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, accountID, bankAccountID int64, ts time.Time, amount string) error {
	// The SELECT doubles as the ownership check: a bank account that does
	// not belong to accountID yields zero rows, and the insert is a no-op.
	query := `
		INSERT INTO entry (id, bank_account, ts, amount, deleted, created, modified)
		SELECT nextval('entry_seq'), ba.id, $3, $4::text::numeric, false, $5, $6
		FROM bank_account ba
		WHERE ba.id = $2 AND ba.account = $1 AND ba.deleted = false
	`
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query, accountID, bankAccountID, ts, amount, now, now); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, accountID, entryID int64) (*models.EntryInfo, error) {
	query := `
		SELECT e.id, ba.name, e.amount::text, ba.currency, e.ts
		FROM entry e
		JOIN bank_account ba ON ba.id = e.bank_account
		WHERE e.id = $2 AND ba.account = $1 AND e.deleted = false AND ba.deleted = false
	`
	info := &models.EntryInfo{}
	err := r.db.QueryRowContext(ctx, query, accountID, entryID).
		Scan(&info.ID, &info.BankAccount, &info.Amount, &info.Currency, &info.TS)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return info, nil
}

func (r *PostgresRepository) UpdateAmount(ctx context.Context, accountID, entryID int64, amount string) error {
	query := `
		UPDATE entry SET amount = $3::text::numeric, modified = $4
		WHERE id = $2 AND deleted = false
		  AND bank_account IN (SELECT id FROM bank_account WHERE account = $1)
	`
	if _, err := r.db.ExecContext(ctx, query, accountID, entryID, amount, time.Now().UTC()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, accountID, entryID int64) error {
	query := `
		UPDATE entry SET deleted = true, modified = $3
		WHERE id = $2 AND deleted = false
		  AND bank_account IN (SELECT id FROM bank_account WHERE account = $1)
	`
	if _, err := r.db.ExecContext(ctx, query, accountID, entryID, time.Now().UTC()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

var listQuery = fmt.Sprintf(`
		SELECT e.id, ba.name, e.amount::text, ba.currency, e.ts
		FROM entry e
		JOIN bank_account ba ON ba.id = e.bank_account
		WHERE ba.account = $1 AND e.deleted = false AND ba.deleted = false
		ORDER BY e.ts DESC
		LIMIT %d
	`, ListLimit)

func (r *PostgresRepository) List(ctx context.Context, accountID int64) ([]models.EntryInfo, error) {
	rows, err := r.db.QueryContext(ctx, listQuery, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanEntryInfos(rows)
}

var listForBankAccountQuery = fmt.Sprintf(`
		SELECT e.id, ba.name, e.amount::text, ba.currency, e.ts
		FROM entry e
		JOIN bank_account ba ON ba.id = e.bank_account
		WHERE ba.account = $1 AND ba.name = $2 AND e.deleted = false AND ba.deleted = false
		ORDER BY e.ts ASC
		LIMIT %d
	`, BankAccountFeedLimit)

func (r *PostgresRepository) ListForBankAccount(ctx context.Context, accountID int64, bankAccountName string) ([]models.EntryInfo, error) {
	rows, err := r.db.QueryContext(ctx, listForBankAccountQuery, accountID, bankAccountName)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanEntryInfos(rows)
}

func (r *PostgresRepository) ListAll(ctx context.Context, accountID int64) ([]models.EntryInfo, error) {
	query := `
		SELECT e.id, ba.name, e.amount::text, ba.currency, e.ts
		FROM entry e
		JOIN bank_account ba ON ba.id = e.bank_account
		WHERE ba.account = $1 AND e.deleted = false AND ba.deleted = false
		ORDER BY e.ts DESC
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanEntryInfos(rows)
}

func (r *PostgresRepository) BankAccountSummaries(ctx context.Context, accountID int64) ([]models.BankAccountInfo, error) {
	// The correlated subquery picks the max-timestamp non-deleted entry per
	// bank account; the JOIN drops bank accounts with no live entries.
	query := `
		SELECT ba.name, e.amount::text, ba.currency, e.ts
		FROM bank_account ba
		JOIN entry e ON e.id = (
			SELECT e2.id
			FROM entry e2
			WHERE e2.bank_account = ba.id AND e2.deleted = false
			ORDER BY e2.ts DESC
			LIMIT 1
		)
		WHERE ba.account = $1 AND ba.deleted = false
		ORDER BY ba.name
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.BankAccountInfo
	for rows.Next() {
		var item models.BankAccountInfo
		if err := rows.Scan(&item.BankAccount, &item.Amount, &item.Currency, &item.TS); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) CurrencySummaries(ctx context.Context, accountID int64) ([]models.CurrencyInfo, error) {
	// Summation happens in the store, in numeric, so decimal amounts never
	// round-trip through floats.
	query := `
		SELECT latest.currency, sum(latest.amount)::text, max(latest.ts)
		FROM (
			SELECT ba.currency, e.amount, e.ts
			FROM bank_account ba
			JOIN entry e ON e.id = (
				SELECT e2.id
				FROM entry e2
				WHERE e2.bank_account = ba.id AND e2.deleted = false
				ORDER BY e2.ts DESC
				LIMIT 1
			)
			WHERE ba.account = $1 AND ba.deleted = false
		) latest
		GROUP BY latest.currency
		ORDER BY latest.currency
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.CurrencyInfo
	for rows.Next() {
		var item models.CurrencyInfo
		if err := rows.Scan(&item.Currency, &item.Amount, &item.TS); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanEntryInfos(rows *sql.Rows) ([]models.EntryInfo, error) {
	var result []models.EntryInfo
	for rows.Next() {
		var item models.EntryInfo
		if err := rows.Scan(&item.ID, &item.BankAccount, &item.Amount, &item.Currency, &item.TS); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
