package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/dmitrijs2005/licensekeeper/internal/cryptox"
	"github.com/dmitrijs2005/licensekeeper/internal/server/models"
	"github.com/dmitrijs2005/licensekeeper/internal/server/repositories/repomanager"
)

// CredentialStore owns account creation and password checks. Plaintext
// passwords never reach the repository.
type CredentialStore struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      cryptox.PasswordHasher
}

func NewCredentialStore(db *sql.DB, m repomanager.RepositoryManager, h cryptox.PasswordHasher) *CredentialStore {
	return &CredentialStore{db: db, repomanager: m, hasher: h}
}

// Create hashes password and inserts the account. A taken username fails
// with common.ErrDuplicateUsername.
func (s *CredentialStore) Create(ctx context.Context, username, password string) (int64, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.repomanager.Accounts(s.db).Create(ctx, &models.Account{
		UserName:     username,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return 0, err
		}
		return 0, fmt.Errorf("error creating account: %w", err)
	}

	return account.ID, nil
}

// Find returns the account or common.ErrorNotFound.
func (s *CredentialStore) Find(ctx context.Context, username string) (*models.Account, error) {
	return s.repomanager.Accounts(s.db).GetByUsername(ctx, username)
}

func (s *CredentialStore) VerifyPassword(account *models.Account, candidate string) bool {
	return s.hasher.Check(candidate, account.PasswordHash)
}
