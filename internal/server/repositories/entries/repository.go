// Package entries declares the repository contract for balance entries and
// the aggregated views derived from them.
package entries

import (
	"context"
	"time"

	"github.com/dmitrijs2005/cashlog/internal/server/models"
)

// Listing caps. The main listing keeps the newest entries; the
// per-bank-account feed is ascending because it drives a time-series chart.
const (
	ListLimit            = 1024
	BankAccountFeedLimit = 4096
)

// Repository defines persistence operations for entries. All reads exclude
// soft-deleted entries and entries under soft-deleted bank accounts, and all
// writes are scoped to the owning account.
type Repository interface {
	// Insert records a balance observation. The ownership check is folded
	// into the insert's subquery: if bankAccountID does not belong to
	// accountID (or is deleted), zero rows are affected and no error is
	// returned. Amount is a decimal string, cast to numeric by the store.
	Insert(ctx context.Context, accountID, bankAccountID int64, ts time.Time, amount string) error

	// Get returns a single entry joined with its bank account, or
	// common.ErrorNotFound when absent or not owned by accountID.
	Get(ctx context.Context, accountID, entryID int64) (*models.EntryInfo, error)

	// UpdateAmount replaces an entry's amount, scoped to accountID.
	UpdateAmount(ctx context.Context, accountID, entryID int64, amount string) error

	// SoftDelete marks an entry deleted, scoped to accountID.
	SoftDelete(ctx context.Context, accountID, entryID int64) error

	// List returns entries newest first, capped at ListLimit.
	List(ctx context.Context, accountID int64) ([]models.EntryInfo, error)

	// ListAll returns every live entry newest first, uncapped. It backs the
	// CSV export, which must not truncate.
	ListAll(ctx context.Context, accountID int64) ([]models.EntryInfo, error)

	// ListForBankAccount returns one bank account's entries oldest first,
	// capped at BankAccountFeedLimit.
	ListForBankAccount(ctx context.Context, accountID int64, bankAccountName string) ([]models.EntryInfo, error)

	// BankAccountSummaries returns, per non-deleted bank account, its latest
	// non-deleted entry. Bank accounts without live entries are excluded.
	BankAccountSummaries(ctx context.Context, accountID int64) ([]models.BankAccountInfo, error)

	// CurrencySummaries groups the latest-entry-per-bank-account set by
	// currency, summing amounts in the store (decimal, not float) and
	// reporting the newest timestamp per group.
	CurrencySummaries(ctx context.Context, accountID int64) ([]models.CurrencyInfo, error)
}
