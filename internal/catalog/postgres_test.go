package catalog

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tektai/ar-viewer/internal/transform"
)

// newTestPostgresStore connects to TEST_DATABASE_URL or skips the test.
func newTestPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL catalog tests")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("database not reachable: %v", err)
	}
	t.Cleanup(pool.Close)

	store := NewPostgresStore(pool)
	require.NoError(t, store.EnsureSchema(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE models`)
	require.NoError(t, err)
	return store
}

func TestPostgresStore_RoundTrip(t *testing.T) {
	store := newTestPostgresStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, Defaults()))

	models, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), models)

	updated, err := store.Update(ctx, "1", Patch{
		Scale:    ptr(0.5),
		Position: &transform.Vec3{0, 0.2, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.5, *updated.Scale)

	got, err := store.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Nil(t, got.Rotation)

	require.NoError(t, store.Remove(ctx, "1"))
	_, err = store.Get(ctx, "1")
	assert.ErrorIs(t, err, ErrModelNotFound)
	assert.ErrorIs(t, store.Remove(ctx, "1"), ErrModelNotFound)

	_, err = store.Update(ctx, "1", Patch{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrModelNotFound)
}
