package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/leafllm-go/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewSQLiteStore(db)
	require.NoError(t, err)
	return s
}

func TestSQLiteStoreRoundTripsCommandRecord(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var missing domain.Command
	ok, err := s.Get(ctx, "Complete", &missing)
	require.NoError(t, err)
	assert.False(t, ok)

	want := domain.DefaultCommand(domain.CommandComplete)
	require.NoError(t, s.Set(ctx, "Complete", want))

	var got domain.Command
	ok, err = s.Get(ctx, "Complete", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestSQLiteStoreOverwritesAndRemoves(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Set(ctx, domain.CredentialKey, "first"))
	require.NoError(t, s.Set(ctx, domain.CredentialKey, "second"))

	var got string
	ok, err := s.Get(ctx, domain.CredentialKey, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", got)

	require.NoError(t, s.Remove(ctx, domain.CredentialKey))
	require.NoError(t, s.Remove(ctx, domain.CredentialKey))

	ok, err = s.Get(ctx, domain.CredentialKey, &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStoreReportsUndecodableValue(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Set(ctx, "Ask", "not a record"))

	var cmd domain.Command
	_, err := s.Get(ctx, "Ask", &cmd)
	assert.Error(t, err)
}
