package services

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/cashlog/internal/common"
	"github.com/dmitrijs2005/cashlog/internal/server/config"
	"github.com/dmitrijs2005/cashlog/internal/server/models"
	"github.com/dmitrijs2005/cashlog/internal/server/repositories/repomanager"
)

// csvTimestampLayout renders timestamps with microseconds when present and
// without a fractional part otherwise.
const csvTimestampLayout = "2006-01-02 15:04:05.999999"

// LedgerService implements the finance side of the application: bank
// accounts, balance entries, the aggregated summary views, and CSV export.
// Amounts are decimal strings end to end; the service validates and
// normalizes them but never converts to floats.
type LedgerService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	queryTimeout time.Duration
}

// NewLedgerService constructs a LedgerService using repositories and server config.
func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *LedgerService {
	return &LedgerService{
		db:           db,
		repomanager:  m,
		queryTimeout: cfg.QueryTimeout,
	}
}

// normalizeAmount parses a submitted amount as an exact decimal and returns
// its canonical string form. A value that does not parse yields
// common.ErrorValidation.
func normalizeAmount(amount string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return "", common.ErrorValidation
	}
	return d.String(), nil
}

// AddBankAccount creates a bank account under accountID.
func (s *LedgerService) AddBankAccount(ctx context.Context, accountID int64, name, currency string) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.repomanager.BankAccounts(s.db).Create(ctx, accountID, name, currency); err != nil {
		return fmt.Errorf("error creating bank account: %w", err)
	}
	return nil
}

// BankAccounts lists the account's non-deleted bank accounts ordered by name.
func (s *LedgerService) BankAccounts(ctx context.Context, accountID int64) ([]models.BankAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	result, err := s.repomanager.BankAccounts(s.db).List(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing bank accounts: %w", err)
	}
	return result, nil
}

// DeleteBankAccount soft-deletes a bank account. The delete is scoped to
// accountID; a bank account owned by someone else is untouched and no error
// is reported.
func (s *LedgerService) DeleteBankAccount(ctx context.Context, accountID, bankAccountID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.repomanager.BankAccounts(s.db).SoftDelete(ctx, accountID, bankAccountID); err != nil {
		return fmt.Errorf("error deleting bank account: %w", err)
	}
	return nil
}

// AddEntry records a balance observation for a bank account at ts. The
// ownership check is folded into the insert: when bankAccountID does not
// belong to accountID, zero rows are affected and nil is returned.
func (s *LedgerService) AddEntry(ctx context.Context, accountID, bankAccountID int64, ts time.Time, amount string) error {
	normalized, err := normalizeAmount(amount)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.repomanager.Entries(s.db).Insert(ctx, accountID, bankAccountID, ts, normalized); err != nil {
		return fmt.Errorf("error saving entry: %w", err)
	}
	return nil
}

// Entry returns one entry joined with its bank account, scoped to accountID.
func (s *LedgerService) Entry(ctx context.Context, accountID, entryID int64) (*models.EntryInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	info, err := s.repomanager.Entries(s.db).Get(ctx, accountID, entryID)
	if err != nil {
		return nil, fmt.Errorf("error reading entry: %w", err)
	}
	return info, nil
}

// UpdateEntryAmount replaces the amount of an existing entry, scoped to
// accountID.
func (s *LedgerService) UpdateEntryAmount(ctx context.Context, accountID, entryID int64, amount string) error {
	normalized, err := normalizeAmount(amount)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.repomanager.Entries(s.db).UpdateAmount(ctx, accountID, entryID, normalized); err != nil {
		return fmt.Errorf("error updating entry: %w", err)
	}
	return nil
}

// DeleteEntry soft-deletes an entry, scoped to accountID.
func (s *LedgerService) DeleteEntry(ctx context.Context, accountID, entryID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.repomanager.Entries(s.db).SoftDelete(ctx, accountID, entryID); err != nil {
		return fmt.Errorf("error deleting entry: %w", err)
	}
	return nil
}

// Entries lists the account's entries newest first, capped by the store.
func (s *LedgerService) Entries(ctx context.Context, accountID int64) ([]models.EntryInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	result, err := s.repomanager.Entries(s.db).List(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return result, nil
}

// EntriesForBankAccount lists one bank account's entries oldest first, the
// shape consumed by the balance chart.
func (s *LedgerService) EntriesForBankAccount(ctx context.Context, accountID int64, bankAccountName string) ([]models.EntryInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	result, err := s.repomanager.Entries(s.db).ListForBankAccount(ctx, accountID, bankAccountName)
	if err != nil {
		return nil, fmt.Errorf("error listing bank account entries: %w", err)
	}
	return result, nil
}

// BankAccountSummaries returns the latest balance per non-deleted bank
// account. Bank accounts without live entries are excluded.
func (s *LedgerService) BankAccountSummaries(ctx context.Context, accountID int64) ([]models.BankAccountInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	result, err := s.repomanager.Entries(s.db).BankAccountSummaries(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error reading bank account summaries: %w", err)
	}
	return result, nil
}

// CurrencySummaries returns per-currency totals over the latest balance of
// each bank account. The sum happens in the store as a decimal.
func (s *LedgerService) CurrencySummaries(ctx context.Context, accountID int64) ([]models.CurrencyInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	result, err := s.repomanager.Entries(s.db).CurrencySummaries(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error reading currency summaries: %w", err)
	}
	return result, nil
}

// WriteCSV streams the account's entries to w as CSV with the header
// "ts,account,amount,currency". The export reads the uncapped listing, so
// it always covers the full history; timestamps are rendered in UTC.
func (s *LedgerService) WriteCSV(ctx context.Context, accountID int64, w io.Writer) error {
	tctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	entries, err := s.repomanager.Entries(s.db).ListAll(tctx, accountID)
	if err != nil {
		return fmt.Errorf("error listing entries: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ts", "account", "amount", "currency"}); err != nil {
		return fmt.Errorf("error writing csv: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.TS.UTC().Format(csvTimestampLayout),
			e.BankAccount,
			e.Amount,
			e.Currency,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("error writing csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("error writing csv: %w", err)
	}
	return nil
}
