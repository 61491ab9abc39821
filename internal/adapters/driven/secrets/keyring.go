// Package secrets stores the OAuth token triple in the operating
// system credential vault via the keyring library.
package secrets

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/99designs/keyring"

	"github.com/tanRdev/otpbar/internal/core/domain"
	"github.com/tanRdev/otpbar/internal/core/ports/driven"
)

const serviceName = "otpbar"

// Ensure Store satisfies the SecretStore port.
var _ driven.SecretStore = (*Store)(nil)

// Store is a SecretStore backed by the system keychain, with an
// encrypted file fallback for headless environments.
type Store struct {
	ring keyring.Keyring
}

// Open configures the vault. configDir locates the file fallback.
func Open(configDir string) (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  filepath.Join(configDir, "credentials"),
		FilePasswordFunc:         keyring.FixedStringPrompt(serviceName + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", domain.ErrState)
	}
	return &Store{ring: ring}, nil
}

// Get retrieves a secret by name. A missing item maps to
// domain.ErrNotFound so callers can tell absence from vault failure.
func (s *Store) Get(name string) (string, error) {
	item, err := s.ring.Get(name)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", fmt.Errorf("secret %q: %w", name, domain.ErrNotFound)
		}
		return "", fmt.Errorf("getting secret %q: %w", name, domain.ErrState)
	}
	return string(item.Data), nil
}

// Set stores a secret by name.
func (s *Store) Set(name, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:  name,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting secret %q: %w", name, domain.ErrState)
	}
	return nil
}

// Delete removes a secret by name. Removing an absent secret is not an
// error.
func (s *Store) Delete(name string) error {
	err := s.ring.Remove(name)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting secret %q: %w", name, domain.ErrState)
	}
	return nil
}
