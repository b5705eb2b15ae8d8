package userrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhive/internal/taskapi/adapters/postgres"
	"taskhive/internal/taskapi/domain/entities"
	"taskhive/internal/taskapi/domain/services"
	"taskhive/pkg/logger"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	ctx = logger.NewContext(ctx, testLogger)

	newUser := &entities.User{
		Name:         "Greg",
		Email:        "greg@x.com",
		PasswordHash: "hashed_password",
	}

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now()
		rows := pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "age", "created_at", "updated_at"}).
			AddRow("generated-id", newUser.Name, newUser.Email, newUser.PasswordHash, nil, now, now)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(newUser.Name, newUser.Email, newUser.PasswordHash, newUser.Age).
			WillReturnRows(rows)

		repo := postgres.NewUserRepository(mock)

		created, err := repo.Create(ctx, newUser)

		require.NoError(t, err)
		assert.Equal(t, "generated-id", created.ID)
		assert.Equal(t, newUser.Email, created.Email)
		assert.Nil(t, created.Age)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Конфликт уникального индекса email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(newUser.Name, newUser.Email, newUser.PasswordHash, newUser.Age).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		repo := postgres.NewUserRepository(mock)

		created, err := repo.Create(ctx, newUser)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrEmailAlreadyExists)
		assert.Nil(t, created)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	ctx = logger.NewContext(ctx, testLogger)

	t.Run("Успешное удаление пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM users").
			WithArgs("user-123").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewUserRepository(mock)

		require.NoError(t, repo.Delete(ctx, "user-123"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM users").
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewUserRepository(mock)

		err = repo.Delete(ctx, "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
