package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/cashlog/internal/common"
	"github.com/dmitrijs2005/cashlog/internal/dbx"
	"github.com/dmitrijs2005/cashlog/internal/logging"
	"github.com/dmitrijs2005/cashlog/internal/server/config"
	"github.com/dmitrijs2005/cashlog/internal/server/models"
	accountsrepo "github.com/dmitrijs2005/cashlog/internal/server/repositories/accounts"
	bankaccountsrepo "github.com/dmitrijs2005/cashlog/internal/server/repositories/bankaccounts"
	entriesrepo "github.com/dmitrijs2005/cashlog/internal/server/repositories/entries"
	logintokensrepo "github.com/dmitrijs2005/cashlog/internal/server/repositories/logintokens"
	"github.com/dmitrijs2005/cashlog/internal/server/repositories/repomanager"
	sessionsrepo "github.com/dmitrijs2005/cashlog/internal/server/repositories/sessions"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:      "http://localhost:14080",
		QueryTimeout: 5 * time.Second,
	}
}

// fakeLogger records messages per level so tests can assert on anomalies
// being logged rather than returned.
type fakeLogger struct {
	mu    sync.Mutex
	warns []string
	infos []string
}

func (l *fakeLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (l *fakeLogger) Info(ctx context.Context, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}
func (l *fakeLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}
func (l *fakeLogger) Error(ctx context.Context, msg string, args ...any) {}
func (l *fakeLogger) With(args ...any) logging.Logger                    { return l }

// --- fake repositories ---

type findIDResult struct {
	id  int64
	err error
}

type emailBinding struct {
	accountID int64
	email     string
}

type fakeAccountsRepo struct {
	findResults []findIDResult

	createOut *models.Account
	createErr error

	addEmailErr   error
	addEmailCalls []emailBinding

	infoOut *models.AccountInfo
	infoErr error

	emailsOut []string
	emailsErr error
}

func (f *fakeAccountsRepo) Create(ctx context.Context) (*models.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeAccountsRepo) AddEmail(ctx context.Context, accountID int64, email string) error {
	f.addEmailCalls = append(f.addEmailCalls, emailBinding{accountID, email})
	return f.addEmailErr
}

func (f *fakeAccountsRepo) FindIDByEmail(ctx context.Context, email string) (int64, error) {
	if len(f.findResults) == 0 {
		return 0, common.ErrorNotFound
	}
	r := f.findResults[0]
	f.findResults = f.findResults[1:]
	return r.id, r.err
}

func (f *fakeAccountsRepo) Info(ctx context.Context, accountID int64) (*models.AccountInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.infoOut, nil
}

func (f *fakeAccountsRepo) Emails(ctx context.Context, accountID int64) ([]string, error) {
	if f.emailsErr != nil {
		return nil, f.emailsErr
	}
	return f.emailsOut, nil
}

type sessionRow struct {
	key, name, value string
}

type fakeSessionsRepo struct {
	upsertErr error
	upserts   []sessionRow

	getOut string
	getErr error

	delErr  error
	deletes []string
}

func (f *fakeSessionsRepo) Upsert(ctx context.Context, key, name, value string) error {
	f.upserts = append(f.upserts, sessionRow{key, name, value})
	return f.upsertErr
}

func (f *fakeSessionsRepo) Get(ctx context.Context, key, name string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.getOut, nil
}

func (f *fakeSessionsRepo) DeleteByKey(ctx context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return f.delErr
}

type tokenIssue struct {
	accountID int64
	token     string
}

type fakeLoginTokensRepo struct {
	createErr error
	created   []tokenIssue

	// accounts maps known unused tokens to their account id.
	accounts map[string]int64
	findErr  error
}

func (f *fakeLoginTokensRepo) Create(ctx context.Context, accountID int64, token string) error {
	f.created = append(f.created, tokenIssue{accountID, token})
	return f.createErr
}

func (f *fakeLoginTokensRepo) FindAccount(ctx context.Context, token string) (int64, error) {
	if f.findErr != nil {
		return 0, f.findErr
	}
	id, ok := f.accounts[token]
	if !ok {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

type fakeBankAccountsRepo struct {
	createErr error
	created   []models.BankAccount

	listOut []models.BankAccount
	listErr error

	delErr  error
	deletes []int64
}

func (f *fakeBankAccountsRepo) Create(ctx context.Context, accountID int64, name, currency string) error {
	f.created = append(f.created, models.BankAccount{Account: accountID, Name: name, Currency: currency})
	return f.createErr
}

func (f *fakeBankAccountsRepo) List(ctx context.Context, accountID int64) ([]models.BankAccount, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeBankAccountsRepo) SoftDelete(ctx context.Context, accountID, bankAccountID int64) error {
	f.deletes = append(f.deletes, bankAccountID)
	return f.delErr
}

type insertedEntry struct {
	accountID     int64
	bankAccountID int64
	ts            time.Time
	amount        string
}

type fakeEntriesRepo struct {
	insertErr error
	inserted  []insertedEntry

	getOut *models.EntryInfo
	getErr error

	updateErr error
	updated   []insertedEntry

	delErr  error
	deletes []int64

	listOut []models.EntryInfo
	listErr error

	listAllOut []models.EntryInfo
	listAllErr error

	feedOut []models.EntryInfo
	feedErr error

	summariesOut []models.BankAccountInfo
	summariesErr error

	currenciesOut []models.CurrencyInfo
	currenciesErr error
}

func (f *fakeEntriesRepo) Insert(ctx context.Context, accountID, bankAccountID int64, ts time.Time, amount string) error {
	f.inserted = append(f.inserted, insertedEntry{accountID, bankAccountID, ts, amount})
	return f.insertErr
}

func (f *fakeEntriesRepo) Get(ctx context.Context, accountID, entryID int64) (*models.EntryInfo, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeEntriesRepo) UpdateAmount(ctx context.Context, accountID, entryID int64, amount string) error {
	f.updated = append(f.updated, insertedEntry{accountID: accountID, bankAccountID: entryID, amount: amount})
	return f.updateErr
}

func (f *fakeEntriesRepo) SoftDelete(ctx context.Context, accountID, entryID int64) error {
	f.deletes = append(f.deletes, entryID)
	return f.delErr
}

func (f *fakeEntriesRepo) List(ctx context.Context, accountID int64) ([]models.EntryInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeEntriesRepo) ListAll(ctx context.Context, accountID int64) ([]models.EntryInfo, error) {
	if f.listAllErr != nil {
		return nil, f.listAllErr
	}
	return f.listAllOut, nil
}

func (f *fakeEntriesRepo) ListForBankAccount(ctx context.Context, accountID int64, bankAccountName string) ([]models.EntryInfo, error) {
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	return f.feedOut, nil
}

func (f *fakeEntriesRepo) BankAccountSummaries(ctx context.Context, accountID int64) ([]models.BankAccountInfo, error) {
	if f.summariesErr != nil {
		return nil, f.summariesErr
	}
	return f.summariesOut, nil
}

func (f *fakeEntriesRepo) CurrencySummaries(ctx context.Context, accountID int64) ([]models.CurrencyInfo, error) {
	if f.currenciesErr != nil {
		return nil, f.currenciesErr
	}
	return f.currenciesOut, nil
}

// fakeRepoManager vends the fakes regardless of the DBTX handed in.
type fakeRepoManager struct {
	accounts     *fakeAccountsRepo
	sessions     *fakeSessionsRepo
	loginTokens  *fakeLoginTokensRepo
	bankAccounts *fakeBankAccountsRepo
	entries      *fakeEntriesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository {
	return m.accounts
}
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository {
	return m.sessions
}
func (m *fakeRepoManager) LoginTokens(db dbx.DBTX) logintokensrepo.Repository {
	return m.loginTokens
}
func (m *fakeRepoManager) BankAccounts(db dbx.DBTX) bankaccountsrepo.Repository {
	return m.bankAccounts
}
func (m *fakeRepoManager) Entries(db dbx.DBTX) entriesrepo.Repository {
	return m.entries
}

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)
