// Package users implements the credential store: persistence of user
// records keyed by a unique username.
package users

import (
	"context"

	"github.com/akarpov/miniblog/internal/server/models"
)

type Repository interface {
	// FindByUsername returns the user record or common.ErrorNotFound.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// CountByUsername reports how many records carry the given username.
	// Used by callers that want a friendly conflict response before Create.
	CountByUsername(ctx context.Context, username string) (int64, error)

	// Create inserts a new user and returns it with the store-assigned id.
	// A concurrent insert of the same username yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
}
