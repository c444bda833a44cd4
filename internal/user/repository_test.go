package user

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

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now())

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("new@example.com", "hashed", RoleCustomer, false, false, true).
			WillReturnRows(rows)

		u, err := repo.Create(ctx, User{
			Email:    "new@example.com",
			Password: "hashed",
			Role:     RoleCustomer,
			IsActive: true,
		})
		assert.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
	})

	t.Run("Duplicate email maps to ErrEmailExists", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pq.Error{Code: pq.ErrorCode(PgUniqueViolation)})

		_, err := repo.Create(ctx, User{Email: "dup@example.com"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("Other db errors propagate", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("db down"))

		_, err := repo.Create(ctx, User{Email: "x@example.com"})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailExists)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	cols := []string{"id", "email", "password", "role", "is_staff", "is_superuser", "is_active", "created_at"}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(cols).
			AddRow(7, "shopper@example.com", "hash", "CUSTOMER", false, false, true, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("shopper@example.com").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(ctx, "shopper@example.com")
		assert.NoError(t, err)
		assert.Equal(t, uint(7), u.ID)
		assert.Equal(t, RoleCustomer, u.Role)
		assert.True(t, u.IsActive)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	cols := []string{"id", "email", "password", "role", "is_staff", "is_superuser", "is_active", "created_at"}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(cols).
			AddRow(3, "staff@example.com", "hash", "CUSTOMER", true, false, true, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs(3).
			WillReturnRows(rows)

		u, err := repo.FindByID(ctx, 3)
		assert.NoError(t, err)
		assert.True(t, u.IsStaff)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.FindByID(ctx, 99)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
