// Package repomanager wires repository constructors together and exposes the
// schema-migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/cashlog/internal/dbx"
	"github.com/dmitrijs2005/cashlog/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/cashlog/internal/server/repositories/bankaccounts"
	"github.com/dmitrijs2005/cashlog/internal/server/repositories/entries"
	"github.com/dmitrijs2005/cashlog/internal/server/repositories/logintokens"
	"github.com/dmitrijs2005/cashlog/internal/server/repositories/sessions"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same repository code inside or outside a transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	LoginTokens(db dbx.DBTX) logintokens.Repository
	BankAccounts(db dbx.DBTX) bankaccounts.Repository
	Entries(db dbx.DBTX) entries.Repository
}
