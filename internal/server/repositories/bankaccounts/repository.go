// Package bankaccounts declares the repository contract for bank accounts,
// the named currency-tagged channels entries are recorded against.
package bankaccounts

import (
	"context"

	"github.com/dmitrijs2005/cashlog/internal/server/models"
)

// Repository defines persistence operations for bank accounts.
// All reads exclude soft-deleted rows.
type Repository interface {
	// Create inserts a non-deleted bank account owned by accountID.
	Create(ctx context.Context, accountID int64, name, currency string) error

	// List returns the account's non-deleted bank accounts ordered by name.
	List(ctx context.Context, accountID int64) ([]models.BankAccount, error)

	// SoftDelete marks a bank account deleted. The update is scoped to
	// accountID; an id owned by someone else affects zero rows and is
	// not an error.
	SoftDelete(ctx context.Context, accountID, bankAccountID int64) error
}
