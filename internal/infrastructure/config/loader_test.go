package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/leafllm-go/internal/domain"
)

func TestFileLoaderWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leafllm", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.ConfigFormatVersion)
	assert.Equal(t, domain.CredentialBackendStore, cfg.Credential.Backend)
	assert.Equal(t, domain.DefaultCredentialPattern, cfg.Credential.Pattern)
	assert.Equal(t, domain.DefaultCredentialEnvVar, cfg.Credential.EnvVar)
	assert.True(t, cfg.Credential.VerifyOnSave)
	assert.True(t, cfg.History.Enabled)
	assert.True(t, filepath.IsAbs(cfg.Storage.Path), "~ is expanded")

	_, err = os.Stat(path)
	assert.NoError(t, err, "defaults are written on first load")
}

func TestFileLoaderHydratesPartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("credential:\n  backend: keyring\nhttp:\n  timeout: 45s\n"), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.CredentialBackendKeyring, cfg.Credential.Backend)
	assert.Equal(t, "45s", cfg.HTTP.Timeout)
	assert.Equal(t, domain.DefaultCredentialPattern, cfg.Credential.Pattern)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.NotEmpty(t, cfg.Shortcuts.File)
}

func TestFileLoaderRespectsEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv("LEAFLLM_CONFIG", path)

	assert.Equal(t, path, NewFileLoader("").Path())
}

func TestFileLoaderRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unterminated"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
}
