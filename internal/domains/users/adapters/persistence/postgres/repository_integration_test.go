//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/users/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/users/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
)

func setupUsersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_CreateAndFetch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser("asha", "turmeric-42", 4)
	require.NoError(t, err)
	created, err := repo.Create(ctx, user)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byName, err := repo.GetByUsername(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.True(t, byName.CheckPassword("turmeric-42"))

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha", byID.Username)

	_, err = repo.GetByUsername(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_DuplicateUsername(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	first, err := domain.NewUser("asha", "turmeric-42", 4)
	require.NoError(t, err)
	_, err = repo.Create(ctx, first)
	require.NoError(t, err)

	second, err := domain.NewUser("asha", "cardamom-7", 4)
	require.NoError(t, err)
	_, err = repo.Create(ctx, second)
	assert.ErrorIs(t, err, ports.ErrUsernameTaken)
}

func TestSessionStore_SaveGetPurge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Save(ctx, &domain.Session{Token: "live", UserID: 1, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, &domain.Session{Token: "stale", UserID: 1, ExpiresAt: now.Add(-time.Hour)}))

	session, err := store.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, int64(1), session.UserID)

	purged, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.Get(ctx, "stale")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "live"))
	_, err = store.Get(ctx, "live")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}
