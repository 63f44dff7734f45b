// Package services contains server-side business logic. This file implements
// SessionService, which mints, resolves, and destroys the DB-backed sessions
// referenced by the "session" cookie.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/cashlog/internal/common"
	"github.com/dmitrijs2005/cashlog/internal/logging"
	"github.com/dmitrijs2005/cashlog/internal/server/auth"
	"github.com/dmitrijs2005/cashlog/internal/server/config"
	"github.com/dmitrijs2005/cashlog/internal/server/repositories/repomanager"
)

// sessionAccountName is the session variable the logged-in account id is
// stored under.
const sessionAccountName = "account"

// SessionService manages session lifecycle. A session is a set of
// (key, name, value) rows sharing an opaque key; the only variable written
// today is the account id.
type SessionService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	logger       logging.Logger
	queryTimeout time.Duration
}

// NewSessionService constructs a SessionService using repositories and server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *SessionService {
	return &SessionService{
		db:           db,
		repomanager:  m,
		logger:       logger.With("module", "sessions"),
		queryTimeout: cfg.QueryTimeout,
	}
}

// Create mints a fresh session key bound to accountID and returns it.
func (s *SessionService) Create(ctx context.Context, accountID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	key := auth.NewSessionKey()
	repo := s.repomanager.Sessions(s.db)
	if err := repo.Upsert(ctx, key, sessionAccountName, strconv.FormatInt(accountID, 10)); err != nil {
		return "", fmt.Errorf("error saving session: %w", err)
	}
	return key, nil
}

// ResolveAccount maps a session key to the logged-in account id. The second
// return value is false when the request should be treated as anonymous:
// unknown key, or a stored value that does not parse as an account id. The
// latter is a data-integrity anomaly and is logged at Warn, not returned as
// an error. Infrastructure failures propagate.
func (s *SessionService) ResolveAccount(ctx context.Context, key string) (int64, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	repo := s.repomanager.Sessions(s.db)
	value, err := repo.Get(ctx, key, sessionAccountName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("error reading session: %w", err)
	}

	accountID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		s.logger.Warn(ctx, "session value is not an account id", "key", key, "value", value)
		return 0, false, nil
	}
	return accountID, true, nil
}

// Destroy removes every row stored under key. Destroying a key that does
// not exist is a no-op.
func (s *SessionService) Destroy(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	repo := s.repomanager.Sessions(s.db)
	if err := repo.DeleteByKey(ctx, key); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}
