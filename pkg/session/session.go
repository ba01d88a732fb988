// Package session persists the Telegram client session between runs so
// that the login flow only happens once.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	gotdsession "github.com/gotd/td/session"
	"teleripper/pkg/config"
	"teleripper/pkg/logger"
)

// PassphraseEnv overrides the passphrase protecting the session file.
const PassphraseEnv = "TELERIPPER_PASSPHRASE"

// Storage is a session store that can also forget the session.
type Storage interface {
	gotdsession.Storage
	Delete() error
}

// Options select and configure the backend.
type Options struct {
	// Backend is one of config.SessionBackendAuto, Keyring or File.
	Backend string
	// Name identifies the session, usually the credentials' session name.
	Name string
	// Dir holds session files, normally ~/.teleripper.
	Dir string
	// Passphrase protects the session file; TELERIPPER_PASSPHRASE wins when set.
	Passphrase string
}

// New opens the configured backend. In auto mode the system keychain is
// preferred and the encrypted file is used when no keychain is reachable.
func New(opts Options) (Storage, error) {
	log := logger.GetLogger().WithField("component", "session")

	switch opts.Backend {
	case config.SessionBackendKeyring:
		return NewKeyringStorage(opts.Name)
	case config.SessionBackendFile:
		return newFile(opts)
	case config.SessionBackendAuto, "":
		s, err := NewKeyringStorage(opts.Name)
		if err == nil {
			log.Debug("Using keyring session storage")
			return s, nil
		}
		log.WithError(err).Debug("Keyring unavailable, falling back to encrypted file")
		return newFile(opts)
	default:
		return nil, fmt.Errorf("unknown session backend %q", opts.Backend)
	}
}

func newFile(opts Options) (*FileStorage, error) {
	passphrase := opts.Passphrase
	if env := os.Getenv(PassphraseEnv); env != "" {
		passphrase = env
	}
	return NewFileStorage(filepath.Join(opts.Dir, opts.Name+".session"), passphrase)
}
