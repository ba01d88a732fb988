package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
	"teleripper/pkg/config"
)

const (
	// CredentialsFileName is the INI file inside the app directory.
	CredentialsFileName = "config.ini"

	iniSection = "Telegram"
)

// INIStore keeps credentials in an INI file:
//
//	[Telegram]
//	api_id = 12345
//	api_hash = 0123456789abcdef
//	session_name = TeleRipper
type INIStore struct {
	path string
}

// NewINIStore returns a store backed by path.
func NewINIStore(path string) *INIStore {
	return &INIStore{path: path}
}

// DefaultINIStore returns the store at ~/.teleripper/config.ini.
func DefaultINIStore() (*INIStore, error) {
	dir, err := config.AppDir()
	if err != nil {
		return nil, err
	}
	return NewINIStore(filepath.Join(dir, CredentialsFileName)), nil
}

// Path returns the file location.
func (s *INIStore) Path() string {
	return s.path
}

func (s *INIStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat credentials file: %w", err)
	}
}

func (s *INIStore) Load() (Credentials, error) {
	f, err := ini.Load(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credentials{}, ErrNotFound
		}
		return Credentials{}, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	if !f.HasSection(iniSection) {
		return Credentials{}, ErrMissingSection
	}
	sec := f.Section(iniSection)

	apiID, err := parseAPIID(sec.Key("api_id").String())
	if err != nil {
		return Credentials{}, err
	}

	creds := Credentials{
		APIID:       apiID,
		APIHash:     strings.TrimSpace(sec.Key("api_hash").String()),
		SessionName: sec.Key("session_name").MustString(DefaultSessionName),
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

func (s *INIStore) Save(creds Credentials) error {
	if creds.SessionName == "" {
		creds.SessionName = DefaultSessionName
	}

	f := ini.Empty()
	sec, err := f.NewSection(iniSection)
	if err != nil {
		return err
	}
	for _, kv := range [][2]string{
		{"api_id", strconv.Itoa(creds.APIID)},
		{"api_hash", creds.APIHash},
		{"session_name", creds.SessionName},
	} {
		if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to set %s: %w", kv[0], err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp := s.path + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create credentials file: %w", err)
	}
	_, err = f.WriteTo(out)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return os.Rename(tmp, s.path)
}

func (s *INIStore) Delete() error {
	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}
