package models

import "time"

// Session is one row of the generic session key/name/value store. The
// opaque key travels in the "session" cookie; (key, name) pairs are unique
// and upserted.
type Session struct {
	ID       int64
	Key      string
	Name     string
	Value    string
	Created  time.Time
	Modified time.Time
}
