// Package accounts declares the repository contract for accounts and the
// email bindings that map login emails onto them.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/cashlog/internal/server/models"
)

// Repository defines persistence operations for accounts and account emails.
type Repository interface {
	// Create inserts a new empty account and returns it with its
	// server-generated id.
	Create(ctx context.Context) (*models.Account, error)

	// AddEmail binds email to accountID. The store enforces that an email
	// maps to at most one account; a duplicate insert fails with the
	// unique-constraint violation.
	AddEmail(ctx context.Context, accountID int64, email string) error

	// FindIDByEmail resolves an email to its account id. Returns
	// common.ErrorNotFound when the email is unknown.
	FindIDByEmail(ctx context.Context, email string) (int64, error)

	// Info returns profile details for the account, or common.ErrorNotFound.
	Info(ctx context.Context, accountID int64) (*models.AccountInfo, error)

	// Emails lists all email addresses bound to the account.
	Emails(ctx context.Context, accountID int64) ([]string, error)
}
