package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQ     = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*username,\s*password_hash,\s*email,\s*display_name,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*$`
	byNameQ     = `(?s)^SELECT\s+id,\s*username,\s*password_hash,\s*email,\s*display_name,\s*created_at,\s*last_login_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`
	byIDQ       = `(?s)^SELECT\s+id,\s*username,\s*password_hash,\s*email,\s*display_name,\s*created_at,\s*last_login_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	lastLoginQ  = `(?s)^UPDATE\s+users\s+SET\s+last_login_at\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1\s*$`
	dbErrorText = `db error: .*db down`
)

var userColumns = []string{"id", "username", "password_hash", "email", "display_name", "created_at", "last_login_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

func sampleUser() *models.User {
	return &models.User{
		ID:           "6f1c1b9e-0000-4000-8000-000000000001",
		UserName:     "alice",
		PasswordHash: "$argon2id$hash",
		Email:        "alice@example.com",
		DisplayName:  "Alice",
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	u := sampleUser()

	mock.ExpectExec(insertQ).
		WithArgs(u.ID, u.UserName, u.PasswordHash, u.Email, u.DisplayName, u.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), u))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	u := sampleUser()

	mock.ExpectExec(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err := repo.Create(context.Background(), u)
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectExec(insertQ).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), sampleUser())
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(dbErrorText), err.Error())
}

func TestGetByUserName_Found(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	u := sampleUser()
	login := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(byNameQ).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(u.ID, u.UserName, u.PasswordHash, u.Email, u.DisplayName, u.CreatedAt, login))

	got, err := repo.GetByUserName(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "alice@example.com", got.Email)
	require.NotNil(t, got.LastLoginAt)
	assert.Equal(t, login, *got.LastLoginAt)
}

func TestGetByUserName_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(byNameQ).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUserName(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID_NullLastLogin(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	u := sampleUser()

	mock.ExpectQuery(byIDQ).
		WithArgs(u.ID).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(u.ID, u.UserName, u.PasswordHash, u.Email, u.DisplayName, u.CreatedAt, nil))

	got, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LastLoginAt)
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(byIDQ).WillReturnError(errors.New("db down"))

	_, err := repo.GetByID(context.Background(), "x")
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(dbErrorText), err.Error())
}

func TestUpdateLastLogin(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("updated", func(t *testing.T) {
		repo, mock, _ := newRepoWithMock(t)
		mock.ExpectExec(lastLoginQ).WithArgs("u-1", at).WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, repo.UpdateLastLogin(context.Background(), "u-1", at))
	})

	t.Run("missing user", func(t *testing.T) {
		repo, mock, _ := newRepoWithMock(t)
		mock.ExpectExec(lastLoginQ).WithArgs("u-2", at).WillReturnResult(sqlmock.NewResult(0, 0))
		require.ErrorIs(t, repo.UpdateLastLogin(context.Background(), "u-2", at), common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock, _ := newRepoWithMock(t)
		mock.ExpectExec(lastLoginQ).WillReturnError(errors.New("db down"))
		err := repo.UpdateLastLogin(context.Background(), "u-3", at)
		require.Error(t, err)
		assert.Regexp(t, regexp.MustCompile(dbErrorText), err.Error())
	})
}
