package models

import "time"

// BankAccount is a named, currency-tagged ledger channel under an account.
// Deletion is a soft flag; rows are retained for audit.
type BankAccount struct {
	ID       int64
	Account  int64
	Name     string
	Currency string
	Deleted  bool
	Created  time.Time
	Modified time.Time
}

// BankAccountInfo is the summary row for a bank account: its latest
// non-deleted entry's amount and timestamp.
type BankAccountInfo struct {
	BankAccount string
	Amount      string
	Currency    string
	TS          time.Time
}
