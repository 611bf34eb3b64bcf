package repomanager

import (
	"context"
	"database/sql"

	"github.com/akarpov/miniblog/internal/dbx"
	"github.com/akarpov/miniblog/internal/server/repositories/posts"
	"github.com/akarpov/miniblog/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
}
