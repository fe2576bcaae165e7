package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photark/albumsync/internal/logger"
)

func newTestUserRepo(t *testing.T, usersTable string) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:         &DB{DB: db, logger: l},
		usersTable: usersTable,
		logger:     l,
	}
	return repo, mock, db
}

func TestFindUserID_ByEmail(t *testing.T) {
	repo, mock, db := newTestUserRepo(t, "users")
	defer db.Close()

	mock.ExpectQuery("SELECT u.id FROM").
		WithArgs("alice@example.com", "alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-42"))

	id, err := repo.FindUserID(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-42", id)
}

func TestFindUserID_NoMatch(t *testing.T) {
	repo, mock, db := newTestUserRepo(t, "users")
	defer db.Close()

	mock.ExpectQuery("SELECT u.id FROM").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserID(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindUserID_NoUsersTable_PassesFilterThrough(t *testing.T) {
	repo, mock, db := newTestUserRepo(t, "")
	defer db.Close()

	// no users relation detected: the filter is assumed to be a raw ID
	id, err := repo.FindUserID(context.Background(), "raw-user-id")
	require.NoError(t, err)
	assert.Equal(t, "raw-user-id", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserID_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t, "users")
	defer db.Close()

	mock.ExpectQuery("SELECT u.id FROM").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindUserID(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrExecutingQuery)
}
