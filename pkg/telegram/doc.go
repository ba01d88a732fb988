// Package telegram adapts github.com/gotd/td to the channels and ripper
// packages.
//
// Client owns the MTProto connection and the login flow. Every RPC goes
// through a rate limiting middleware that also honours FLOOD_WAIT answers.
// Session is handed to callers inside Client.Run and implements both
// channels.DialogSource and ripper.Source.
package telegram
