package session

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	gotdsession "github.com/gotd/td/session"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 32
	keySize    = 32
	iterations = 100000
)

// ErrDecrypt is returned when the session file cannot be opened with the
// configured passphrase.
var ErrDecrypt = errors.New("failed to decrypt session file")

// FileStorage keeps the session in a file encrypted with AES-GCM. The key is
// derived from a passphrase with PBKDF2-SHA256.
type FileStorage struct {
	path       string
	passphrase string
	mu         sync.Mutex
}

type fileEnvelope struct {
	Version  int       `json:"version"`
	Salt     []byte    `json:"salt"`
	Data     []byte    `json:"data"`
	Modified time.Time `json:"modified"`
}

// NewFileStorage returns a storage at path. passphrase must not be empty.
func NewFileStorage(path, passphrase string) (*FileStorage, error) {
	if passphrase == "" {
		return nil, errors.New("session passphrase is required")
	}
	return &FileStorage{path: path, passphrase: passphrase}, nil
}

// Path returns the file location.
func (f *FileStorage) Path() string {
	return f.path
}

func (f *FileStorage) LoadSession(_ context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, gotdsession.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var env fileEnvelope
	if err := json.Unmarshal(content, &env); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	data, err := decrypt(env.Data, deriveKey(f.passphrase, env.Salt))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return data, nil
}

func (f *FileStorage) StoreSession(_ context.Context, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	encrypted, err := encrypt(data, deriveKey(f.passphrase, salt))
	if err != nil {
		return fmt.Errorf("failed to encrypt session: %w", err)
	}

	content, err := json.MarshalIndent(fileEnvelope{
		Version:  1,
		Salt:     salt,
		Data:     encrypted,
		Modified: time.Now(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return os.Rename(tmp, f.path)
}

// Delete removes the session file.
func (f *FileStorage) Delete() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, keySize, sha256.New)
}

// encrypt encrypts data using AES-GCM
func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// decrypt decrypts data using AES-GCM
func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
