package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	gotdsession "github.com/gotd/td/session"
	"github.com/zalando/go-keyring"
)

const keyringService = "teleripper"

// KeyringStorage keeps the session blob in the system keychain, base64 encoded.
type KeyringStorage struct {
	name string
}

// NewKeyringStorage checks that a keychain is reachable and returns a
// storage for the named session.
func NewKeyringStorage(name string) (*KeyringStorage, error) {
	const probe = "availability_probe"
	if err := keyring.Set(keyringService, probe, "ok"); err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, probe)

	return &KeyringStorage{name: name}, nil
}

func (k *KeyringStorage) LoadSession(_ context.Context) ([]byte, error) {
	encoded, err := keyring.Get(keyringService, k.key())
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, gotdsession.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read session from keyring: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return data, nil
}

func (k *KeyringStorage) StoreSession(_ context.Context, data []byte) error {
	if err := keyring.Set(keyringService, k.key(), base64.StdEncoding.EncodeToString(data)); err != nil {
		return fmt.Errorf("failed to store session in keyring: %w", err)
	}
	return nil
}

// Delete removes the session from the keychain.
func (k *KeyringStorage) Delete() error {
	err := keyring.Delete(keyringService, k.key())
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete session from keyring: %w", err)
	}
	return nil
}

func (k *KeyringStorage) key() string {
	return "session_" + k.name
}
