package category

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success derives slug from name", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now())

		mock.ExpectQuery("INSERT INTO categories").
			WithArgs("Running Shoes", "running-shoes", "", true, nil).
			WillReturnRows(rows)

		c, err := repo.Create(ctx, Category{Name: "Running Shoes", IsActive: true})
		assert.NoError(t, err)
		assert.Equal(t, uint(1), c.ID)
		assert.Equal(t, "running-shoes", c.Slug)
	})

	t.Run("Slug collision appends numeric suffix", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO categories").
			WithArgs("Shoes", "shoes", "", true, nil).
			WillReturnError(&pq.Error{Code: pq.ErrorCode(PgUniqueViolation)})

		rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(2, time.Now())
		mock.ExpectQuery("INSERT INTO categories").
			WithArgs("Shoes", "shoes-1", "", true, nil).
			WillReturnRows(rows)

		c, err := repo.Create(ctx, Category{Name: "Shoes", IsActive: true})
		assert.NoError(t, err)
		assert.Equal(t, "shoes-1", c.Slug)
	})

	t.Run("Non-unique errors propagate", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO categories").WillReturnError(errors.New("db down"))

		_, err := repo.Create(ctx, Category{Name: "Shoes", IsActive: true})
		assert.Error(t, err)
	})
}

func TestRepository_GetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	cols := []string{"id", "name", "slug", "description", "is_active", "thumbnail", "created_at"}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(cols).
			AddRow(1, "Apparel", "apparel", "", true, nil, time.Now()).
			AddRow(2, "Shoes", "shoes", "", true, nil, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM categories ORDER BY name ASC").
			WillReturnRows(rows)

		res, err := repo.GetAll(context.Background())
		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, "apparel", res[0].Slug)
	})

	t.Run("Empty list is not nil", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM categories ORDER BY name ASC").
			WillReturnRows(sqlmock.NewRows(cols))

		res, err := repo.GetAll(context.Background())
		assert.NoError(t, err)
		assert.NotNil(t, res)
		assert.Len(t, res, 0)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	cols := []string{"id", "name", "slug", "description", "is_active", "thumbnail", "created_at"}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(cols).AddRow(1, "Apparel", "apparel", "", true, nil, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM categories").
			WithArgs(1).
			WillReturnRows(rows)

		c, err := repo.GetByID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, "Apparel", c.Name)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM categories").
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.GetByID(context.Background(), 42)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM categories").
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 1))
	})

	t.Run("Referential protect maps to ErrCategoryInUse", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM categories").
			WithArgs(2).
			WillReturnError(&pq.Error{Code: pq.ErrorCode(PgForeignKeyViolation)})

		assert.ErrorIs(t, repo.Delete(ctx, 2), ErrCategoryInUse)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM categories").
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 3), ErrCategoryNotFound)
	})
}
