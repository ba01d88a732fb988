package telegram

import (
	"context"
	"fmt"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"

	apperrors "teleripper/pkg/errors"
	"teleripper/pkg/logger"
	"teleripper/pkg/ratelimit"
)

// limitMiddleware paces every RPC through l. A FLOOD_WAIT answer pauses l
// for the requested time; the error itself is still returned to the caller.
func limitMiddleware(l ratelimit.Limiter, log logger.Logger) telegram.Middleware {
	return telegram.MiddlewareFunc(func(next tg.Invoker) telegram.InvokeFunc {
		return func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
			if err := l.Wait(ctx); err != nil {
				return err
			}

			err := next.Invoke(ctx, input, output)
			if wait, ok := apperrors.FloodWait(err); ok {
				logger.LogFloodWait(methodName(input), int(wait.Seconds()))
				log.WithField("wait", wait.String()).Debug("Pausing requests")
				l.Pause(wait)
			}
			return err
		}
	})
}

func methodName(input bin.Encoder) string {
	if named, ok := input.(interface{ TypeName() string }); ok {
		return named.TypeName()
	}
	return fmt.Sprintf("%T", input)
}
