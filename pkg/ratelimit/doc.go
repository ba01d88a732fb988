// Package ratelimit paces requests sent to the Telegram API.
//
// History pages, dialog pages and file downloads all draw a token from the
// same TokenBucket before they are sent. When the server answers with a
// FLOOD_WAIT error the caller reports the requested delay through Pause and
// every subsequent request is held back until it has elapsed.
//
// Usage:
//
//	limiter := ratelimit.NewTokenBucket(2, 5)
//
//	if err := limiter.Wait(ctx); err != nil {
//	    return err
//	}
//	// send request
package ratelimit
