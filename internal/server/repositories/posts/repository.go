// Package posts implements the post store: persistence of blog post records
// with store-assigned ids.
package posts

import (
	"context"

	"github.com/akarpov/miniblog/internal/server/models"
)

type Repository interface {
	// List returns all posts, oldest first.
	List(ctx context.Context) ([]*models.BlogPost, error)

	// FindByID returns the post record or common.ErrorNotFound.
	FindByID(ctx context.Context, id string) (*models.BlogPost, error)

	// Create inserts a new post and returns it with the store-assigned id.
	Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)

	// UpdateFields applies a partial update: a nil title or content leaves
	// the stored value unchanged. Returns the updated record, or
	// common.ErrorNotFound when the id is absent.
	UpdateFields(ctx context.Context, id string, title, content *string) (*models.BlogPost, error)

	// Delete removes a post by id and reports whether a record existed.
	Delete(ctx context.Context, id string) (bool, error)
}
