// Package services contains server-side business logic. This file implements
// UserService, which handles registration and the authentication gate used
// by the HTTP Basic credential check.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akarpov/miniblog/internal/common"
	"github.com/akarpov/miniblog/internal/cryptox"
	"github.com/akarpov/miniblog/internal/dbx"
	"github.com/akarpov/miniblog/internal/server/config"
	"github.com/akarpov/miniblog/internal/server/models"
	"github.com/akarpov/miniblog/internal/server/repositories/repomanager"
)

// UserService provides user-related operations:
// - Register: create users with hashed passwords
// - Authenticate: resolve a username/password pair to an identity
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hashCost    int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hashCost:    cfg.BcryptCost,
	}
}

// Register creates a new user. Username and password are trimmed first. A
// username that is already taken yields common.ErrorConflict, whether it is
// caught by the pre-check or by the store's uniqueness constraint; the
// pre-check only exists to answer before the insert in the common case, the
// race window between the two is closed by the constraint.
func (s *UserService) Register(ctx context.Context, username, password, firstName, lastName string) (*models.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	var created *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		count, err := repo.CountByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("error checking username: %w", err)
		}
		if count > 0 {
			return common.ErrorConflict
		}

		digest, err := cryptox.HashPassword(password, s.hashCost)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}

		created, err = repo.Create(ctx, &models.User{
			Username:     username,
			PasswordHash: digest,
			FirstName:    firstName,
			LastName:     lastName,
		})
		if err != nil {
			if errors.Is(err, common.ErrorConflict) {
				return common.ErrorConflict
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Authenticate is the auth gate: it looks the user up by username and
// verifies the supplied password against the stored digest. An unknown
// username fails with ErrIncorrectUsername, a digest mismatch with
// ErrIncorrectPassword. The distinction is for internal use only; the
// transport presents both as the same 401.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.Identity, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrIncorrectUsername
		}
		return nil, common.ErrorInternal
	}

	if !cryptox.VerifyPassword(user.PasswordHash, password) {
		return nil, common.ErrIncorrectPassword
	}

	return user.Identity(), nil
}
