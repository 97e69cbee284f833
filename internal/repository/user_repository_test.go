package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Chamas111/booking-airbnb/internal/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{"user_id", "name", "email", "password_hash", "created_at"}

func newUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewUserRepository(sqlx.NewDb(db, "postgres"), bcrypt.MinCost), mock
}

func TestUserRepository_CreateUser(t *testing.T) {
	ctx := context.Background()
	insert := regexp.QuoteMeta(`INSERT INTO users (user_id, name, email, password_hash, created_at)`)

	t.Run("creates user with hashed password", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		user := &models.User{Name: "Ann", Email: "ann@example.com"}

		mock.ExpectExec(insert).
			WithArgs(sqlmock.AnyArg(), "Ann", "ann@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(ctx, user, "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		user := &models.User{Name: "Ann", Email: "ann@example.com"}

		mock.ExpectExec(insert).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := repo.CreateUser(ctx, user, "password123")

		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock := newUserRepo(t)

		mock.ExpectExec(insert).WillReturnError(errors.New("connection reset"))

		err := repo.CreateUser(ctx, &models.User{Name: "Ann", Email: "ann@example.com"}, "password123")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateEmail)
		assert.Contains(t, err.Error(), "failed to create user")
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	query := regexp.QuoteMeta(`SELECT * FROM users WHERE user_id = $1`)

	t.Run("found", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		rows := sqlmock.NewRows(userColumns).
			AddRow(userID, "Ann", "ann@example.com", "hash", time.Now())

		mock.ExpectQuery(query).WithArgs(userID).WillReturnRows(rows)

		user, err := repo.GetUserByID(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, userID, user.UserID)
		assert.Equal(t, "Ann", user.Name)
		assert.Equal(t, "ann@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		mock.ExpectQuery(query).WithArgs(userID).WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByID(ctx, userID)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		mock.ExpectQuery(query).WithArgs(userID).WillReturnError(errors.New("connection failed"))

		user, err := repo.GetUserByID(ctx, userID)

		assert.Nil(t, user)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	ctx := context.Background()
	email := "ann@example.com"
	query := regexp.QuoteMeta(`SELECT * FROM users WHERE email = $1`)

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		mock.ExpectQuery(query).WithArgs(email).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u1", "Ann", email, string(hashed), time.Now()))

		user, err := repo.VerifyPassword(ctx, email, "correct_password")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		mock.ExpectQuery(query).WithArgs(email).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u1", "Ann", email, string(hashed), time.Now()))

		user, err := repo.VerifyPassword(ctx, email, "wrong_password")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		mock.ExpectQuery(query).WithArgs(email).WillReturnError(sql.ErrNoRows)

		user, err := repo.VerifyPassword(ctx, email, "correct_password")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNewUserRepository_InvalidCostFallsBack(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(sqlx.NewDb(db, "postgres"), 99).(*userRepository)
	assert.Equal(t, bcrypt.DefaultCost, repo.cost)
}

// go test ./internal/repository/... -v
