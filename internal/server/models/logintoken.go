package models

import "time"

// LoginToken is a single-use bearer credential mailed out as part of a
// magic-link login URL and exchanged for a session.
type LoginToken struct {
	ID      int64
	Account int64
	Token   string
	Used    bool
	// UsedTS is nil while the token has not been consumed.
	UsedTS   *time.Time
	Created  time.Time
	Modified time.Time
}
