package user

import (
	"context"
	"flag"
	"os"
	"testing"

	"github.com/budgetly/budgetly/internal/test_utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()
	cleanup := func() {}
	if !testing.Short() {
		pool, closeDb, err := test_utils.TestWithDB()
		if err != nil {
			log.Warnf("database tests disabled: %v", err)
		} else {
			db, cleanup = pool, closeDb
		}
	}
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *UserRepoImpl) {
	if db == nil {
		t.Skip("database not available")
	}
	ctx := context.Background()
	t.Cleanup(func() {
		require.NoError(t, test_utils.Truncate(ctx, db))
	})
	return ctx, NewUserRepo(db)
}

func TestUserRepoImpl(t *testing.T) {
	t.Run("should create and find user by id and email", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)
		u := User{Uid: uuid.NewString(), Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}

		// when
		id, err := repo.CreateUser(ctx, u)
		require.NoError(t, err)

		// then
		byId, err := repo.GetUser(ctx, id)
		require.NoError(t, err)
		byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		u.Id = id
		assert.Equal(t, u, byId)
		assert.Equal(t, u, byEmail)
	})

	t.Run("should reject taken email", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)
		_, err := repo.CreateUser(ctx, User{Uid: uuid.NewString(), Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"})
		require.NoError(t, err)

		_, err = repo.CreateUser(ctx, User{Uid: uuid.NewString(), Name: "Other", Email: "alice@example.com", PasswordHash: "hash"})

		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("should return not found for unknown email", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)

		_, err := repo.FindByEmail(ctx, "nobody@example.com")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
