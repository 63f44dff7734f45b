// Package mail dispatches login-link emails. The active implementation is
// chosen by configuration: a real SMTP sender, or a log-only sender used in
// development when email delivery is disabled.
package mail

import "context"

// Mailer sends the magic-link login email. A send failure is reported to the
// caller but never rolls back the already-persisted login token; the link
// stays valid even if the email never arrived.
type Mailer interface {
	SendLoginLink(ctx context.Context, email, url string) error
}
