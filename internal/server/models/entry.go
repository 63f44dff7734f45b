package models

import "time"

// Entry records "the balance of this bank account at time TS was Amount".
// Entries are independent observations, not double-entry transactions.
// Amount is a decimal string end to end; it is never held as a float.
type Entry struct {
	ID          int64
	BankAccount int64
	TS          time.Time
	Amount      string
	Deleted     bool
	Created     time.Time
	Modified    time.Time
}

// EntryInfo is an entry joined with its bank account, as listed and exported.
type EntryInfo struct {
	ID          int64
	BankAccount string
	Amount      string
	Currency    string
	TS          time.Time
}

// CurrencyInfo aggregates the latest balances of all bank accounts sharing
// a currency: the decimal sum of amounts and the newest timestamp.
type CurrencyInfo struct {
	Currency string
	Amount   string
	TS       time.Time
}
