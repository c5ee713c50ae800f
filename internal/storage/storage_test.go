package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/zentracker/internal/config"
	"github.com/MrJamesThe3rd/zentracker/internal/kv"
	"github.com/MrJamesThe3rd/zentracker/internal/storage"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.Storage.Driver = config.StorageSQLite
	cfg.Storage.Path = filepath.Join(t.TempDir(), "nested", "zen.db")

	s, err := storage.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Put(ctx, kv.KeyTheme, []byte("dark")))

	got, err := s.Get(ctx, kv.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", string(got))
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = "etcd"

	_, err := storage.Open(context.Background(), cfg)
	assert.Error(t, err)
}
