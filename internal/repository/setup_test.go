package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regdocs/internal/config"
	models "regdocs/internal/domain/models/registry"
	"regdocs/internal/metrics"
	redisStore "regdocs/internal/repository/redis"
)

func memoryConfig() *config.Config {
	return &config.Config{
		StoreBackend:  config.StoreMemory,
		CategorySheet: "kategori",
		MetadataSheet: "metadata",
		RootFolderID:  "root",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSetupStores_Memory(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewMetrics()

	stores, err := SetupStores(ctx, memoryConfig(), m, discardLogger())
	require.NoError(t, err)
	defer stores.Close()

	rows, err := stores.Tables.ReadAll(ctx, "kategori")
	require.NoError(t, err)
	assert.Equal(t, [][]string{models.CategoryHeader}, rows)

	rows, err = stores.Tables.ReadAll(ctx, "metadata")
	require.NoError(t, err)
	assert.Equal(t, [][]string{models.DocumentHeader}, rows)

	assert.NotNil(t, stores.Folders)
	assert.NotNil(t, stores.Sessions)
}

func TestSetupStores_UnknownBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.StoreBackend = "ftp"

	_, err := SetupStores(context.Background(), cfg, nil, discardLogger())
	assert.ErrorContains(t, err, `unknown store backend "ftp"`)
}

func TestSetupStores_RedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := memoryConfig()
	cfg.RedisURL = "redis://" + mr.Addr()

	stores, err := SetupStores(context.Background(), cfg, nil, discardLogger())
	require.NoError(t, err)

	assert.IsType(t, &redisStore.SessionStore{}, stores.Sessions)
	assert.NoError(t, stores.Close())
}

func TestSetupStores_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := memoryConfig()
	cfg.RedisURL = "redis://" + addr

	_, err := SetupStores(context.Background(), cfg, nil, discardLogger())
	assert.Error(t, err)
}
