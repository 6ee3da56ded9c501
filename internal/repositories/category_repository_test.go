package repositories

import (
	"context"
	"regexp"
	"testing"

	"advertBack/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepositoryCreatePostgres(t *testing.T) {
	db, mock := newMock(t)
	repo := &CategoryRepository{DB: db, Dialect: Postgres}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories (name, parent_id) VALUES ($1, $2) RETURNING id")).
		WithArgs("Книги", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	c, err := repo.Create(context.Background(), models.Category{Name: "Книги", ParentID: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 42, c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepositoryDeleteReferenced(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		db, mock := newMock(t)
		repo := &CategoryRepository{DB: db}

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = ?")).WithArgs(1).
			WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})

		require.ErrorIs(t, repo.Delete(context.Background(), 1), models.ErrReferenced)
	})

	t.Run("postgres", func(t *testing.T) {
		db, mock := newMock(t)
		repo := &CategoryRepository{DB: db, Dialect: Postgres}

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = $1")).WithArgs(1).
			WillReturnError(&pgconn.PgError{Code: "23503", Detail: `Key (id)=(1) is still referenced from table "advertisements".`})

		require.ErrorIs(t, repo.Delete(context.Background(), 1), models.ErrReferenced)
	})
}

func TestCategoryRepositoryGetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := &CategoryRepository{DB: db}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = ?")).WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "parent_id", "parent_name"}).AddRow(8, "Автомобили", 1, "Транспорт"))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = ?")).WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "parent_id", "parent_name"}))

	c, err := repo.GetByID(context.Background(), 8)
	require.NoError(t, err)
	require.NotNil(t, c.ParentID)
	assert.Equal(t, 1, *c.ParentID)
	assert.Equal(t, "Транспорт", c.ParentName)

	_, err = repo.GetByID(context.Background(), 9)
	require.ErrorIs(t, err, models.ErrNoRecord)
}
