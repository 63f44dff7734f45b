// Package httpapi is the HTTP surface of the server: a chi router over thin
// handlers that parse forms, call the services, and render JSON or CSV.
// Validation failures come back as field-level error maps with the submitted
// values echoed, so a client can re-render the form.
package httpapi

import (
	"context"
	"io"
	"time"

	"github.com/dmitrijs2005/cashlog/internal/logging"
	"github.com/dmitrijs2005/cashlog/internal/server/config"
	"github.com/dmitrijs2005/cashlog/internal/server/models"
)

// LoginFlow starts passwordless logins and redeems magic-link tokens.
type LoginFlow interface {
	Start(ctx context.Context, email string) error
	Redeem(ctx context.Context, token string) (string, error)
}

// SessionManager resolves and destroys cookie sessions.
type SessionManager interface {
	ResolveAccount(ctx context.Context, key string) (int64, bool, error)
	Destroy(ctx context.Context, key string) error
}

// Ledger exposes the finance operations behind the authenticated routes.
type Ledger interface {
	AddBankAccount(ctx context.Context, accountID int64, name, currency string) error
	BankAccounts(ctx context.Context, accountID int64) ([]models.BankAccount, error)
	DeleteBankAccount(ctx context.Context, accountID, bankAccountID int64) error

	AddEntry(ctx context.Context, accountID, bankAccountID int64, ts time.Time, amount string) error
	Entry(ctx context.Context, accountID, entryID int64) (*models.EntryInfo, error)
	UpdateEntryAmount(ctx context.Context, accountID, entryID int64, amount string) error
	DeleteEntry(ctx context.Context, accountID, entryID int64) error
	Entries(ctx context.Context, accountID int64) ([]models.EntryInfo, error)
	EntriesForBankAccount(ctx context.Context, accountID int64, bankAccountName string) ([]models.EntryInfo, error)

	BankAccountSummaries(ctx context.Context, accountID int64) ([]models.BankAccountInfo, error)
	CurrencySummaries(ctx context.Context, accountID int64) ([]models.CurrencyInfo, error)
	WriteCSV(ctx context.Context, accountID int64, w io.Writer) error
}

// AccountDirectory serves the profile page.
type AccountDirectory interface {
	Info(ctx context.Context, accountID int64) (*models.AccountInfo, error)
}

// Handler holds the services the HTTP handlers delegate to.
type Handler struct {
	login    LoginFlow
	sessions SessionManager
	ledger   Ledger
	accounts AccountDirectory
	logger   logging.Logger

	cookieMaxAge time.Duration
}

// NewHandler wires the services into a Handler.
func NewHandler(login LoginFlow, sessions SessionManager, ledger Ledger,
	accounts AccountDirectory, cfg *config.Config, logger logging.Logger) *Handler {
	return &Handler{
		login:        login,
		sessions:     sessions,
		ledger:       ledger,
		accounts:     accounts,
		logger:       logger.With("module", "httpapi"),
		cookieMaxAge: cfg.SessionCookieMaxAge,
	}
}
