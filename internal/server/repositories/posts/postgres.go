package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/akarpov/miniblog/internal/common"
	"github.com/akarpov/miniblog/internal/dbx"
	"github.com/akarpov/miniblog/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.BlogPost, error) {
	query :=
		`SELECT id, author_first_name, author_last_name, title, content, created FROM posts
		 ORDER BY created
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.BlogPost{}
	for rows.Next() {
		post := &models.BlogPost{}
		if err := rows.Scan(&post.ID, &post.AuthorFirstName, &post.AuthorLastName,
			&post.Title, &post.Content, &post.Created); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	query :=
		`SELECT id, author_first_name, author_last_name, title, content, created FROM posts
		 WHERE id = $1
		 `

	post := &models.BlogPost{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.AuthorFirstName, &post.AuthorLastName, &post.Title, &post.Content, &post.Created)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	query :=
		`INSERT INTO posts (id, author_first_name, author_last_name, title, content, created)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	id := uuid.NewString()
	err := r.db.QueryRowContext(ctx, query,
		id, post.AuthorFirstName, post.AuthorLastName, post.Title, post.Content, post.Created).Scan(&post.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) UpdateFields(ctx context.Context, id string, title, content *string) (*models.BlogPost, error) {
	// COALESCE keeps the stored value for fields absent from the request.
	query :=
		`UPDATE posts
		 SET title = COALESCE($2, title), content = COALESCE($3, content)
		 WHERE id = $1
		 RETURNING id, author_first_name, author_last_name, title, content, created
		 `

	post := &models.BlogPost{}
	err := r.db.QueryRowContext(ctx, query, id, title, content).
		Scan(&post.ID, &post.AuthorFirstName, &post.AuthorLastName, &post.Title, &post.Content, &post.Created)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	query :=
		`DELETE FROM posts
		 WHERE id = $1
		 `

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}
