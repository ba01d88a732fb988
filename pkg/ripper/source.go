package ripper

import (
	"context"
	"errors"
	"fmt"

	"teleripper/pkg/media"
)

// Channel is a resolved broadcast channel.
type Channel struct {
	// ID is the marked identifier, e.g. -1001234567890.
	ID    int64
	Title string
}

// Source is the remote side of a download run.
type Source interface {
	// ResolveChannel looks up a channel by marked id or username. It returns
	// an error matching ErrChannelNotFound when nothing matches.
	ResolveChannel(ctx context.Context, identifier string) (Channel, error)

	// History calls fn for each message, newest first, stopping after limit
	// messages when limit is positive.
	History(ctx context.Context, ch Channel, limit int, fn func(media.Message) error) error

	// Download writes the attachment of msg to path and returns its size.
	Download(ctx context.Context, msg media.Message, path string) (int64, error)
}

// ErrChannelNotFound is matched by every lookup miss.
var ErrChannelNotFound = errors.New("channel not found")

// NotFoundError reports the identifier that could not be resolved.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find channel with ID %s", e.Identifier)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrChannelNotFound
}
