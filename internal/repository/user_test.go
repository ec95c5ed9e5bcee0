package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktracker/tasktracker-go/internal/model"
	"github.com/tasktracker/tasktracker-go/internal/repository"
	"github.com/tasktracker/tasktracker-go/internal/testutil"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(testutil.NewDB(t))

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	user := &model.User{Login: gofakeit.Username(), PasswordHash: "$argon2id$hash", CreatedAt: created}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	byLogin, err := repo.GetByLogin(ctx, user.Login)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byLogin.ID)
	assert.Equal(t, "$argon2id$hash", byLogin.PasswordHash)
	assert.True(t, created.Equal(byLogin.CreatedAt), "created_at = %v", byLogin.CreatedAt)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Login, byID.Login)
}

func TestUserRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(testutil.NewDB(t))

	_, err := repo.GetByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_DuplicateLogin(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(testutil.NewDB(t))

	require.NoError(t, repo.Create(ctx, &model.User{Login: "alice", PasswordHash: "h1", CreatedAt: time.Now()}))
	err := repo.Create(ctx, &model.User{Login: "alice", PasswordHash: "h2", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, repository.ErrDuplicateLogin)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, repository.EnsureSchema(context.Background(), db, repository.DriverSQLite))
	assert.Error(t, repository.EnsureSchema(context.Background(), db, "postgres"))
}

func TestNewDB_UnsupportedDriver(t *testing.T) {
	_, err := repository.NewDB("oracle", "whatever")
	assert.Error(t, err)
}
