// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is the identity anchor a set of emails, sessions, and bank
// accounts belong to. Accounts are created explicitly or implicitly as a
// side effect of a first-time email login; they are never deleted.
type Account struct {
	ID       int64
	Created  time.Time
	Modified time.Time
}

// AccountEmail binds an email address to an account. An account may have
// several emails; an email maps to at most one account (unique constraint).
type AccountEmail struct {
	ID       int64
	Account  int64
	Email    string
	Created  time.Time
	Modified time.Time
}

// AccountInfo carries the account details shown on the profile page.
type AccountInfo struct {
	Created  time.Time
	Modified time.Time
	Emails   []string
}
