package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/leafllm-go/internal/domain"
)

func validConfig() domain.Config {
	return domain.Config{
		Storage:    domain.StorageSettings{Path: "/tmp/settings.db"},
		Shortcuts:  domain.ShortcutSettings{File: "/tmp/shortcuts.yaml"},
		Credential: domain.CredentialSettings{Backend: domain.CredentialBackendStore, Pattern: domain.DefaultCredentialPattern},
		HTTP:       domain.HTTPSettings{Timeout: "30s"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*domain.Config) {}},
		{name: "keyring backend", mutate: func(c *domain.Config) { c.Credential.Backend = domain.CredentialBackendKeyring }},
		{name: "missing storage", mutate: func(c *domain.Config) { c.Storage.Path = " " }, wantErr: "storage.path"},
		{name: "missing shortcuts", mutate: func(c *domain.Config) { c.Shortcuts.File = "" }, wantErr: "shortcuts.file"},
		{name: "unknown backend", mutate: func(c *domain.Config) { c.Credential.Backend = "vault" }, wantErr: "credential.backend"},
		{name: "bad pattern", mutate: func(c *domain.Config) { c.Credential.Pattern = "sk-[" }, wantErr: "credential.pattern"},
		{name: "bad timeout", mutate: func(c *domain.Config) { c.HTTP.Timeout = "soon" }, wantErr: "http.timeout"},
		{name: "negative timeout", mutate: func(c *domain.Config) { c.HTTP.Timeout = "-1s" }, wantErr: "http.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	d, err := RequestTimeout(domain.HTTPSettings{})
	require.NoError(t, err)
	assert.Zero(t, d)

	d, err = RequestTimeout(domain.HTTPSettings{Timeout: "90s"})
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
}
