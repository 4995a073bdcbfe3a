package credential

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/doeshing/leafllm-go/internal/infrastructure/store"
)

func newSettingsBackend(t *testing.T) *SettingsStore {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	s, err := store.NewSQLiteStore(db)
	require.NoError(t, err)
	return NewSettingsStore(s)
}

func TestSettingsStoreCredential(t *testing.T) {
	ctx := context.Background()
	creds := newSettingsBackend(t)

	key, err := creds.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, key)

	require.NoError(t, creds.Set(ctx, "sk-abc"))
	key, err = creds.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-abc", key)

	require.NoError(t, creds.Remove(ctx))
	key, err = creds.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestKeyringStoreCredential(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()
	creds := NewKeyringStore()

	key, err := creds.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, key)

	require.NoError(t, creds.Set(ctx, "sk-from-keyring"))
	key, err = creds.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-keyring", key)

	require.NoError(t, creds.Remove(ctx))
	require.NoError(t, creds.Remove(ctx))
}

func TestEnvFallback(t *testing.T) {
	ctx := context.Background()
	t.Setenv("LEAFLLM_TEST_KEY", "sk-from-env")
	creds := WithEnvFallback(newSettingsBackend(t), "LEAFLLM_TEST_KEY")

	key, err := creds.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", key)

	require.NoError(t, creds.Set(ctx, "sk-stored"))
	key, err = creds.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-stored", key, "stored key wins over the environment")
}
