package credential

import (
	"context"
	"errors"

	"github.com/zalando/go-keyring"

	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/ports"
)

// KeyringService is the service name entries are filed under in the OS keyring.
const KeyringService = "leafllm"

// KeyringStore keeps the API key in the operating system keyring.
type KeyringStore struct {
	service string
	user    string
}

// NewKeyringStore builds a keyring-backed credential store.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: KeyringService, user: domain.CredentialKey}
}

// Get returns the stored key or "" when none is set.
func (s *KeyringStore) Get(context.Context) (string, error) {
	key, err := keyring.Get(s.service, s.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return key, err
}

func (s *KeyringStore) Set(_ context.Context, key string) error {
	return keyring.Set(s.service, s.user, key)
}

// Remove deletes the entry; a missing entry is not an error.
func (s *KeyringStore) Remove(context.Context) error {
	err := keyring.Delete(s.service, s.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

var _ ports.CredentialStore = (*KeyringStore)(nil)
