package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/cashlog/internal/common"
	"github.com/dmitrijs2005/cashlog/internal/logging"
	"github.com/dmitrijs2005/cashlog/internal/server/config"
	"github.com/dmitrijs2005/cashlog/internal/server/models"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (nopLogger) With(args ...any) logging.Logger                    { return nopLogger{} }

type fakeLoginFlow struct {
	startErr error
	started  []string

	redeemKey string
	redeemErr error
	redeemed  []string
}

func (f *fakeLoginFlow) Start(ctx context.Context, email string) error {
	f.started = append(f.started, email)
	return f.startErr
}

func (f *fakeLoginFlow) Redeem(ctx context.Context, token string) (string, error) {
	f.redeemed = append(f.redeemed, token)
	if f.redeemErr != nil {
		return "", f.redeemErr
	}
	return f.redeemKey, nil
}

type fakeSessionManager struct {
	// accounts maps session keys to account ids.
	accounts   map[string]int64
	resolveErr error

	destroyed  []string
	destroyErr error
}

func (f *fakeSessionManager) ResolveAccount(ctx context.Context, key string) (int64, bool, error) {
	if f.resolveErr != nil {
		return 0, false, f.resolveErr
	}
	id, ok := f.accounts[key]
	return id, ok, nil
}

func (f *fakeSessionManager) Destroy(ctx context.Context, key string) error {
	f.destroyed = append(f.destroyed, key)
	return f.destroyErr
}

type addedEntry struct {
	accountID     int64
	bankAccountID int64
	ts            time.Time
	amount        string
}

type fakeLedger struct {
	entries    []models.EntryInfo
	entriesErr error

	added  []addedEntry
	addErr error

	entryOut *models.EntryInfo
	entryErr error

	updated   []string
	updateErr error

	deletedEntries []int64

	bankAccounts    []models.BankAccount
	createdAccounts []string
	deletedAccounts []int64

	summaries  []models.BankAccountInfo
	currencies []models.CurrencyInfo

	feed     []models.EntryInfo
	feedName string

	csv    string
	csvErr error
}

func (f *fakeLedger) AddBankAccount(ctx context.Context, accountID int64, name, currency string) error {
	f.createdAccounts = append(f.createdAccounts, name)
	return nil
}

func (f *fakeLedger) BankAccounts(ctx context.Context, accountID int64) ([]models.BankAccount, error) {
	return f.bankAccounts, nil
}

func (f *fakeLedger) DeleteBankAccount(ctx context.Context, accountID, bankAccountID int64) error {
	f.deletedAccounts = append(f.deletedAccounts, bankAccountID)
	return nil
}

func (f *fakeLedger) AddEntry(ctx context.Context, accountID, bankAccountID int64, ts time.Time, amount string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, addedEntry{accountID, bankAccountID, ts, amount})
	return nil
}

func (f *fakeLedger) Entry(ctx context.Context, accountID, entryID int64) (*models.EntryInfo, error) {
	if f.entryErr != nil {
		return nil, f.entryErr
	}
	return f.entryOut, nil
}

func (f *fakeLedger) UpdateEntryAmount(ctx context.Context, accountID, entryID int64, amount string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, amount)
	return nil
}

func (f *fakeLedger) DeleteEntry(ctx context.Context, accountID, entryID int64) error {
	f.deletedEntries = append(f.deletedEntries, entryID)
	return nil
}

func (f *fakeLedger) Entries(ctx context.Context, accountID int64) ([]models.EntryInfo, error) {
	if f.entriesErr != nil {
		return nil, f.entriesErr
	}
	return f.entries, nil
}

func (f *fakeLedger) EntriesForBankAccount(ctx context.Context, accountID int64, bankAccountName string) ([]models.EntryInfo, error) {
	f.feedName = bankAccountName
	return f.feed, nil
}

func (f *fakeLedger) BankAccountSummaries(ctx context.Context, accountID int64) ([]models.BankAccountInfo, error) {
	return f.summaries, nil
}

func (f *fakeLedger) CurrencySummaries(ctx context.Context, accountID int64) ([]models.CurrencyInfo, error) {
	return f.currencies, nil
}

func (f *fakeLedger) WriteCSV(ctx context.Context, accountID int64, w io.Writer) error {
	if f.csvErr != nil {
		return f.csvErr
	}
	_, err := io.WriteString(w, f.csv)
	return err
}

type fakeAccountDirectory struct {
	info *models.AccountInfo
	err  error
}

func (f *fakeAccountDirectory) Info(ctx context.Context, accountID int64) (*models.AccountInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.info == nil {
		return nil, common.ErrorNotFound
	}
	return f.info, nil
}

// testDeps bundles the fakes behind one router.
type testDeps struct {
	login    *fakeLoginFlow
	sessions *fakeSessionManager
	ledger   *fakeLedger
	accounts *fakeAccountDirectory
	router   http.Handler
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	d := &testDeps{
		login:    &fakeLoginFlow{redeemKey: "fresh-key"},
		sessions: &fakeSessionManager{accounts: map[string]int64{"good-key": 7}},
		ledger:   &fakeLedger{},
		accounts: &fakeAccountDirectory{},
	}
	cfg := &config.Config{SessionCookieMaxAge: 365 * 24 * time.Hour}
	h := NewHandler(d.login, d.sessions, d.ledger, d.accounts, cfg, nopLogger{})
	d.router = NewRouter(h)
	return d
}

// doRequest runs one request through the router, optionally logged in.
func (d *testDeps) doRequest(method, target, body string, loggedIn bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if loggedIn {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "good-key"})
	}
	rec := httptest.NewRecorder()
	d.router.ServeHTTP(rec, req)
	return rec
}

// doRequestWithCookie runs one request with an explicit session key.
func (d *testDeps) doRequestWithCookie(method, target, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: key})
	rec := httptest.NewRecorder()
	d.router.ServeHTTP(rec, req)
	return rec
}
