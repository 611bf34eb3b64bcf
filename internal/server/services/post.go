package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/akarpov/miniblog/internal/server/models"
	"github.com/akarpov/miniblog/internal/server/repositories/repomanager"
)

// PostService implements the post CRUD rules: the author of a new post is a
// snapshot of the authenticated identity's name, updates touch only the
// fields present in the request, and deletes are idempotent.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m, now: time.Now}
}

// List returns all posts.
func (s *PostService) List(ctx context.Context) ([]*models.BlogPost, error) {
	return s.repomanager.Posts(s.db).List(ctx)
}

// Get returns the post with the given id, or common.ErrorNotFound.
func (s *PostService) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	return s.repomanager.Posts(s.db).FindByID(ctx, id)
}

// Create stores a new post authored by the given identity. The author name
// parts are copied from the identity, never taken from the request, and the
// creation timestamp is assigned here.
func (s *PostService) Create(ctx context.Context, ident *models.Identity, title, content string) (*models.BlogPost, error) {
	post := &models.BlogPost{
		AuthorFirstName: ident.FirstName,
		AuthorLastName:  ident.LastName,
		Title:           title,
		Content:         content,
		Created:         s.now().UTC(),
	}
	return s.repomanager.Posts(s.db).Create(ctx, post)
}

// Update applies a partial update: nil fields keep their stored values.
func (s *PostService) Update(ctx context.Context, id string, title, content *string) (*models.BlogPost, error) {
	return s.repomanager.Posts(s.db).UpdateFields(ctx, id, title, content)
}

// Delete removes the post and reports whether a record existed.
func (s *PostService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repomanager.Posts(s.db).Delete(ctx, id)
}
