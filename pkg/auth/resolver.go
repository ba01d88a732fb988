package auth

import (
	"errors"
	"fmt"
	"strings"
)

// Prompter asks the user for the application credentials.
type Prompter interface {
	PromptAPIID() (string, error)
	PromptAPIHash() (string, error)
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Ensure returns the saved credentials, asking for them through p and
// saving them first when none exist yet. A malformed file is reported as is;
// it is never rewritten.
func Ensure(store Store, p Prompter) (creds Credentials, created bool, err error) {
	exists, err := store.Exists()
	if err != nil {
		return Credentials{}, false, err
	}
	if exists {
		creds, err = store.Load()
		return creds, false, err
	}

	rawID, err := p.PromptAPIID()
	if err != nil {
		return Credentials{}, false, fmt.Errorf("read API ID: %w", err)
	}
	apiID, err := parseAPIID(rawID)
	if err != nil {
		return Credentials{}, false, err
	}

	hash, err := p.PromptAPIHash()
	if err != nil {
		return Credentials{}, false, fmt.Errorf("read API hash: %w", err)
	}

	creds = Credentials{
		APIID:       apiID,
		APIHash:     strings.TrimSpace(hash),
		SessionName: DefaultSessionName,
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, false, err
	}
	if err := store.Save(creds); err != nil {
		return Credentials{}, false, fmt.Errorf("save credentials: %w", err)
	}
	return creds, true, nil
}

// ResetOutcome describes what Reset did.
type ResetOutcome int

const (
	// ResetNothing means there were no saved credentials.
	ResetNothing ResetOutcome = iota
	// ResetCancelled means the user declined.
	ResetCancelled
	// ResetDone means the credentials file was removed.
	ResetDone
)

// ResetQuestion is asked before credentials are removed.
const ResetQuestion = "Are you sure you want to reset your API credentials? (y/n): "

// Reset deletes the saved credentials after confirmation.
func Reset(store Store, c Confirmer) (ResetOutcome, error) {
	exists, err := store.Exists()
	if err != nil {
		return ResetNothing, err
	}
	if !exists {
		return ResetNothing, nil
	}

	ok, err := c.Confirm(ResetQuestion)
	if err != nil {
		return ResetCancelled, err
	}
	if !ok {
		return ResetCancelled, nil
	}

	if err := store.Delete(); err != nil && !errors.Is(err, ErrNotFound) {
		return ResetCancelled, err
	}
	return ResetDone, nil
}

// IsYes reports whether an answer means yes.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
