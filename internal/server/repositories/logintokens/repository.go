// Package logintokens declares the repository contract for single-use login
// tokens issued by the passwordless login flow.
package logintokens

import "context"

// Repository defines operations for issuing and redeeming login tokens.
type Repository interface {
	// Create stores a new token for accountID with used = false.
	Create(ctx context.Context, accountID int64, token string) error

	// FindAccount resolves an unused token to its account id. Returns
	// common.ErrorNotFound when the token is unknown or already used.
	//
	// Redemption does not flip the used flag: the flow that consumes the
	// token queries used = false but never marks the row. That matches the
	// shipped behavior and is pinned by tests; see the services package.
	FindAccount(ctx context.Context, token string) (int64, error)
}
