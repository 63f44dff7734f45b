package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cashlog/internal/server/config"
	"github.com/dmitrijs2005/cashlog/internal/server/models"
	"github.com/dmitrijs2005/cashlog/internal/server/repositories/repomanager"
)

// AccountService serves the profile page: account timestamps plus the list
// of emails bound to the account.
type AccountService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	queryTimeout time.Duration
}

// NewAccountService constructs an AccountService using repositories and server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:           db,
		repomanager:  m,
		queryTimeout: cfg.QueryTimeout,
	}
}

// Info returns profile details for accountID, or common.ErrorNotFound.
func (s *AccountService) Info(ctx context.Context, accountID int64) (*models.AccountInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	repo := s.repomanager.Accounts(s.db)

	info, err := repo.Info(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error reading account: %w", err)
	}
	emails, err := repo.Emails(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error reading account emails: %w", err)
	}
	info.Emails = emails
	return info, nil
}
