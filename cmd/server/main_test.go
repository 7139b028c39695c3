package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"joseki/internal/adapters"
	"joseki/internal/bootstrap"
)

func TestRun(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Run("missing config is returned", func(t *testing.T) {
		err := run(log, filepath.Join(t.TempDir(), "missing.env"))

		assert.Error(t, err)
	})

	t.Run("database failure is returned", func(t *testing.T) {
		// Given: a config whose Mongo URI cannot be parsed
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("MONGO_URI=not-a-uri\n"), 0o600))

		// When: the server starts
		err := run(log, path)

		// Then: run returns instead of exiting the process
		assert.Error(t, err)
	})
}

func TestDataBaseAdapters_Close(t *testing.T) {
	cfg := &bootstrap.Config{}
	log := zap.NewNop().Sugar()

	d := &dataBaseAdapters{
		redisAdapter: adapters.NewAdapterRedis(cfg, log),
		mongoAdapter: adapters.NewAdapterMongo(cfg, log),
	}

	assert.NotPanics(t, func() { d.close(log) })
}
