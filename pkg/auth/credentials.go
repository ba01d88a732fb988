package auth

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// DefaultSessionName is used when the credentials file does not name a session.
const DefaultSessionName = "TeleRipper"

// Credentials identify the registered Telegram application.
type Credentials struct {
	APIID       int
	APIHash     string
	SessionName string
}

// Store persists a single set of credentials.
type Store interface {
	// Exists reports whether credentials have been saved
	Exists() (bool, error)

	// Load reads the saved credentials
	Load() (Credentials, error)

	// Save writes credentials, replacing any existing ones
	Save(Credentials) error

	// Delete removes the saved credentials
	Delete() error
}

// Validate checks the fields required to open a session.
func (c Credentials) Validate() error {
	var errs []error
	if c.APIID <= 0 {
		errs = append(errs, ErrInvalidAPIID)
	}
	if strings.TrimSpace(c.APIHash) == "" {
		errs = append(errs, ErrMissingAPIHash)
	}
	return errors.Join(errs...)
}

// Masked returns a copy safe for display.
func (c Credentials) Masked() Credentials {
	c.APIHash = maskString(c.APIHash)
	return c
}

// FromEnv reads credentials from TELERIPPER_API_ID and TELERIPPER_API_HASH.
// ok is false unless both are set.
func FromEnv() (creds Credentials, ok bool, err error) {
	id := os.Getenv("TELERIPPER_API_ID")
	hash := os.Getenv("TELERIPPER_API_HASH")
	if id == "" || hash == "" {
		return Credentials{}, false, nil
	}

	apiID, err := parseAPIID(id)
	if err != nil {
		return Credentials{}, true, err
	}

	name := os.Getenv("TELERIPPER_SESSION_NAME")
	if name == "" {
		name = DefaultSessionName
	}
	creds = Credentials{APIID: apiID, APIHash: strings.TrimSpace(hash), SessionName: name}
	if err := creds.Validate(); err != nil {
		return Credentials{}, true, err
	}
	return creds, true, nil
}

func parseAPIID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, ErrInvalidAPIID
	}
	return id, nil
}

// maskString masks all but the first 4 and last 4 characters of a string
func maskString(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// Errors
var (
	ErrNotFound       = errors.New("credentials not found")
	ErrMissingSection = errors.New("missing [Telegram] section")
	ErrInvalidAPIID   = errors.New("API ID must be a number")
	ErrMissingAPIHash = errors.New("API hash is required")
)
