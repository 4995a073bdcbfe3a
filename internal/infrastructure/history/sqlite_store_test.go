package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/infrastructure/store"
)

func TestSQLiteStoreSavesNewestFirst(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h, err := NewSQLiteStore(db)
	require.NoError(t, err)

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i, cmd := range domain.CommandKeys() {
		require.NoError(t, h.Save(ctx, domain.HistoryRecord{
			ID:         uuid.NewString(),
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
			Command:    cmd,
			Model:      "gpt-3.5-turbo",
			Outcome:    domain.OutcomeSuccess,
			DurationMS: int64(100 * (i + 1)),
		}))
	}

	records, err := h.Records(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.CommandAsk, records[0].Command)
	assert.Equal(t, domain.CommandImprove, records[1].Command)
	assert.Equal(t, int64(300), records[0].DurationMS)
	assert.True(t, records[0].Timestamp.Equal(base.Add(2*time.Minute)))

	all, err := h.Records(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, h.Clear(ctx))
	all, err = h.Records(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}
