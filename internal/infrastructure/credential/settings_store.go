package credential

import (
	"context"

	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/ports"
)

// SettingsStore keeps the API key in the settings database next to the
// other records, under its own key.
type SettingsStore struct {
	store ports.SettingsStore
}

// NewSettingsStore wraps a settings store.
func NewSettingsStore(store ports.SettingsStore) *SettingsStore {
	return &SettingsStore{store: store}
}

// Get returns the stored key or "" when none is set.
func (s *SettingsStore) Get(ctx context.Context) (string, error) {
	var key string
	if _, err := s.store.Get(ctx, domain.CredentialKey, &key); err != nil {
		return "", err
	}
	return key, nil
}

func (s *SettingsStore) Set(ctx context.Context, key string) error {
	return s.store.Set(ctx, domain.CredentialKey, key)
}

func (s *SettingsStore) Remove(ctx context.Context) error {
	return s.store.Remove(ctx, domain.CredentialKey)
}

var _ ports.CredentialStore = (*SettingsStore)(nil)
