package telegram

import (
	"context"
	"errors"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// Prompt reads answers from the user.
type Prompt interface {
	Line(prompt string) (string, error)
	Secret(prompt string) (string, error)
}

// ErrSignUpRequired is returned for phone numbers without an account.
var ErrSignUpRequired = errors.New("phone number is not registered; sign up with an official Telegram app first")

type terminalAuth struct {
	prompt Prompt
	phone  string
}

// NewTerminalAuth answers the login flow interactively. A non-empty phone
// skips the phone prompt.
func NewTerminalAuth(p Prompt, phone string) auth.UserAuthenticator {
	return terminalAuth{prompt: p, phone: strings.TrimSpace(phone)}
}

func (a terminalAuth) Phone(_ context.Context) (string, error) {
	if a.phone != "" {
		return a.phone, nil
	}
	phone, err := a.prompt.Line("Please enter your phone (international format): ")
	return strings.TrimSpace(phone), err
}

func (a terminalAuth) Password(_ context.Context) (string, error) {
	return a.prompt.Secret("Please enter your password: ")
}

func (a terminalAuth) Code(_ context.Context, _ *tg.AuthSentCode) (string, error) {
	code, err := a.prompt.Line("Please enter the code you received: ")
	return strings.TrimSpace(code), err
}

func (a terminalAuth) AcceptTermsOfService(_ context.Context, tos tg.HelpTermsOfService) error {
	return &auth.SignUpRequired{TermsOfService: tos}
}

func (a terminalAuth) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, ErrSignUpRequired
}
