package posts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/akarpov/miniblog/internal/common"
	"github.com/akarpov/miniblog/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var postColumns = []string{"id", "author_first_name", "author_last_name", "title", "content", "created"}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	q := `(?s)^SELECT\s+id,\s*author_first_name,\s*author_last_name,\s*title,\s*content,\s*created\s+FROM\s+posts\s+ORDER\s+BY\s+created\s*$`

	rows := sqlmock.NewRows(postColumns).
		AddRow("p-1", "Test", "Boy", "T1", "C1", created).
		AddRow("p-2", "Jane", "Doe", "T2", "C2", created.Add(time.Hour))
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(got))
	}
	if got[0].ID != "p-1" || got[0].AuthorName() != "Test Boy" || got[1].Title != "T2" {
		t.Fatalf("unexpected posts: %+v, %+v", got[0], got[1])
	}
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows(postColumns))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	q := `(?s)^INSERT\s+INTO\s+posts\s*\(id,\s*author_first_name,\s*author_last_name,\s*title,\s*content,\s*created\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id\s*$`

	rows := sqlmock.NewRows([]string{"id"}).AddRow("p-42")
	mock.ExpectQuery(q).
		WithArgs(sqlmock.AnyArg(), "Test", "Boy", "T", "C", created).
		WillReturnRows(rows)

	p := &models.BlogPost{AuthorFirstName: "Test", AuthorLastName: "Boy", Title: "T", Content: "C", Created: created}
	got, err := repo.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "p-42" {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestUpdateFields_PartialUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	title := "New title"

	q := `(?s)^UPDATE\s+posts\s+SET\s+title\s*=\s*COALESCE\(\$2,\s*title\),\s*content\s*=\s*COALESCE\(\$3,\s*content\)\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,\s*author_first_name,\s*author_last_name,\s*title,\s*content,\s*created\s*$`

	rows := sqlmock.NewRows(postColumns).
		AddRow("p-1", "Test", "Boy", "New title", "old content", created)
	// database/sql dereferences pointer args before they reach the driver.
	mock.ExpectQuery(q).WithArgs("p-1", "New title", nil).WillReturnRows(rows)

	got, err := repo.UpdateFields(context.Background(), "p-1", &title, nil)
	if err != nil {
		t.Fatalf("UpdateFields error: %v", err)
	}
	if got.Title != "New title" || got.Content != "old content" {
		t.Fatalf("unexpected post after update: %+v", got)
	}
}

func TestUpdateFields_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	title := "x"
	mock.ExpectQuery(`UPDATE`).WithArgs("ghost", "x", nil).WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateFields(context.Background(), "ghost", &title, nil)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+posts\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 1))

	existed, err := repo.Delete(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if !existed {
		t.Fatalf("expected existed=true")
	}
}

func TestDelete_Absent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE`).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))

	existed, err := repo.Delete(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if existed {
		t.Fatalf("expected existed=false for absent id")
	}
}

func TestList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
