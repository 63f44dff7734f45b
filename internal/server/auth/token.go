// Package auth generates the opaque bearer credentials used by the login
// flow: single-use login tokens and session keys.
package auth

import "github.com/google/uuid"

// NewLoginToken returns a new unguessable login token. UUIDv4 carries 122
// bits of entropy from a uniform CSPRNG, which makes both guessing and
// collisions infeasible. Entropy-source failure panics inside the uuid
// package; there is no meaningful recovery from a broken CSPRNG.
func NewLoginToken() string {
	return uuid.NewString()
}

// NewSessionKey returns a new unguessable session key for the session cookie.
func NewSessionKey() string {
	return uuid.NewString()
}
