package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"advertBack/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := &UserRepository{DB: db}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.CreateUser(context.Background(), models.User{Email: "a@b.c", Name: "A", Role: models.RoleUser})
	require.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestUserRepositoryDeleteRestricted(t *testing.T) {
	db, mock := newMock(t)
	repo := &UserRepository{DB: db}

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = ?")).WithArgs(2).
		WillReturnError(&mysql.MySQLError{Number: 1451})

	require.ErrorIs(t, repo.DeleteUser(context.Background(), 2), models.ErrReferenced)
}

func TestUserRepositoryInsertBatch(t *testing.T) {
	db, mock := newMock(t)
	repo := &UserRepository{DB: db}
	at := time.Now()
	region := 1

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("VALUES (?, ?, ?, ?, ?, ?, ?, ?), (?, ?, ?, ?, ?, ?, ?, ?)")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.InsertBatch(context.Background(), []models.User{
		{Email: "bot_1@example.com", Name: "Анна Иванова", Role: models.RoleUser, Rating: 4.5, RegionID: &region, CreatedAt: at},
		{Email: "bot_2@example.com", Name: "Илья Петров", Role: models.RoleUser, Rating: 3.5, RegionID: &region, CreatedAt: at},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFirstUser(t *testing.T) {
	db, mock := newMock(t)
	repo := &UserRepository{DB: db}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, region_id FROM users ORDER BY id LIMIT 1")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "region_id"}).AddRow(1, nil))

	fu, err := repo.FirstUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.FirstUser{UserID: 1, RegionID: 0}, fu)
}
