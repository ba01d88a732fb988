package errors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gotd/td/tgerr"
)

// ErrorType represents the failure classes the command line reports differently
type ErrorType string

const (
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeResolve    ErrorType = "resolve"
	ErrorTypeConnection ErrorType = "connection"
	ErrorTypeAPI        ErrorType = "api"
	ErrorTypeDownload   ErrorType = "download"
	ErrorTypeUnexpected ErrorType = "unexpected"
)

// Error wraps an underlying error with its type and the operation that failed
type Error struct {
	Type ErrorType
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err. A nil err yields nil.
func New(t ErrorType, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Type: t, Op: op, Err: err}
}

// Config wraps a configuration failure
func Config(op string, err error) error { return New(ErrorTypeConfig, op, err) }

// Resolve wraps a channel lookup failure
func Resolve(op string, err error) error { return New(ErrorTypeResolve, op, err) }

// Download wraps a single file transfer failure
func Download(op string, err error) error { return New(ErrorTypeDownload, op, err) }

// TypeOf returns the type of the outermost typed error in the chain, or
// classifies the raw error when none is present.
func TypeOf(err error) ErrorType {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return Classify(err)
}

// Classify inspects an untyped error coming from the Telegram client.
func Classify(err error) ErrorType {
	if _, ok := tgerr.As(err); ok {
		return ErrorTypeAPI
	}

	var netErr net.Error
	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &opErr), errors.As(err, &dnsErr), errors.As(err, &netErr):
		return ErrorTypeConnection
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeConnection
	}
	return ErrorTypeUnexpected
}

// FloodWait reports the wait time requested by a FLOOD_WAIT error.
func FloodWait(err error) (time.Duration, bool) {
	rpcErr, ok := tgerr.As(err)
	if !ok || !rpcErr.IsType("FLOOD_WAIT") {
		return 0, false
	}
	return time.Duration(rpcErr.Argument) * time.Second, true
}

// IsType checks whether err is of the given type.
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}
