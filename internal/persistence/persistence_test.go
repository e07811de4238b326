package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/libenaigi/CUHIRE/internal/config"
)

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_jobs.sql", "001_users.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_users.sql", "002_jobs.sql"}, files)

	_, err = migrationFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRepoMigrationsPresent(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	assert.NotEmpty(t, files)
}

func TestRunMigrations_NoPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, "does-not-matter", zap.NewNop()))
}

func TestDisabledBackends(t *testing.T) {
	ctx := context.Background()

	pg, err := NewPostgres(ctx, config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, pg.Enabled())
	assert.ErrorIs(t, pg.Ping(ctx), ErrPostgresDisabled)
	assert.Nil(t, pg.PoolHandle())
	pg.Close()

	rd := NewRedis(config.RedisConfig{}, zap.NewNop())
	assert.False(t, rd.Enabled())
	assert.ErrorIs(t, rd.Ping(ctx), ErrRedisDisabled)
	assert.ErrorIs(t, rd.Publish(ctx, "c", []byte("x")), ErrRedisDisabled)
	rd.Close()
}
