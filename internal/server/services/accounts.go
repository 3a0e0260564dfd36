// Package services contains server-side business logic: account
// registration and login, the preference singleton, and the pond advisor
// that talks to the text generator.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fishfarmer/internal/common"
	"github.com/dmitrijs2005/fishfarmer/internal/logging"
	"github.com/dmitrijs2005/fishfarmer/internal/server/auth"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/accounts"
)

// LoginResult is returned by a successful login. It carries the account's
// username for display only; no session is created.
type LoginResult struct {
	Username string
}

// AccountService registers accounts and checks credentials.
//
// Register holds the write lock for its whole load-check-append cycle, so
// two concurrent registrations can never both pass the uniqueness checks.
// Login only reads and takes the read lock.
type AccountService struct {
	mu         sync.RWMutex
	repo       accounts.Repository
	bcryptCost int
	logger     logging.Logger
}

// NewAccountService constructs an AccountService hashing with bcryptCost.
func NewAccountService(repo accounts.Repository, bcryptCost int, logger logging.Logger) *AccountService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &AccountService{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger.With("module", "accounts"),
	}
}

// Register creates an account. Usernames are checked before emails, both
// by exact match against the collection as it was before this call.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading accounts: %w", err)
	}

	for _, a := range list {
		if a.Username == username {
			return nil, common.ErrDuplicateUsername
		}
	}
	for _, a := range list {
		if a.Email == email {
			return nil, common.ErrDuplicateEmail
		}
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &models.Account{Username: username, Email: email, PasswordHash: hash}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	s.logger.Info(ctx, "account registered", "username", username, "accounts", len(list)+1)
	return account, nil
}

// Login finds the first account, in stored order, whose username or email
// equals identifier and verifies password against its hash.
func (s *AccountService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading accounts: %w", err)
	}

	var account *models.Account
	for i := range list {
		if list[i].Username == identifier || list[i].Email == identifier {
			account = &list[i]
			break
		}
	}
	if account == nil {
		return nil, common.ErrAccountNotFound
	}

	if err := auth.CheckPassword(account.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrMismatch) {
			return nil, common.ErrIncorrectPassword
		}
		s.logger.Error(ctx, "stored password hash is unusable", "username", account.Username, "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &LoginResult{Username: account.Username}, nil
}
