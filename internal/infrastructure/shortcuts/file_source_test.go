package shortcuts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSourceMissingFileMeansUnbound(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "shortcuts.yaml"))

	got, err := src.Shortcuts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileSourceEnsureDefaultsSkipsConflicts(t *testing.T) {
	ctx := context.Background()
	src := NewFileSource(filepath.Join(t.TempDir(), "cfg", "shortcuts.yaml"))

	created, err := src.EnsureDefaults(ctx, []lo.Entry[string, string]{
		{Key: "Complete", Value: "Alt+C"},
		{Key: "Improve", Value: "alt+c"},
		{Key: "Ask", Value: "Alt+A"},
	})
	require.NoError(t, err)
	assert.True(t, created)

	got, err := src.Shortcuts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Complete": "Alt+C", "Ask": "Alt+A"}, got)

	created, err = src.EnsureDefaults(ctx, []lo.Entry[string, string]{{Key: "Improve", Value: "Alt+I"}})
	require.NoError(t, err)
	assert.False(t, created, "existing bindings are never overwritten")
}

func TestFileSourceBindAndUnbind(t *testing.T) {
	ctx := context.Background()
	src := NewFileSource(filepath.Join(t.TempDir(), "shortcuts.yaml"))

	require.NoError(t, src.Bind(ctx, "Improve", "ctrl+shift+i"))
	got, err := src.Shortcuts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ctrl+Shift+I", got["Improve"])

	err = src.Bind(ctx, "Ask", "Ctrl+Shift+I")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already bound to Improve")

	require.NoError(t, src.Unbind(ctx, "Improve"))
	got, err = src.Shortcuts(ctx)
	require.NoError(t, err)
	_, bound := got["Improve"]
	assert.False(t, bound)
}

func TestFileSourceRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shortcuts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bindings: [oops"), 0o600))

	_, err := NewFileSource(path).Shortcuts(context.Background())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		combo   string
		wantErr bool
	}{
		{"Alt+C", false},
		{"Ctrl+Shift+K", false},
		{"MacCtrl+F5", false},
		{"C", true},
		{"Alt+", true},
		{"Hyper+C", true},
	}
	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			err := Validate(tt.combo)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
