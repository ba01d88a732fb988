package channels

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Dialog is one conversation as reported by the account's dialog list.
type Dialog struct {
	ID        int64
	Title     string
	IsChannel bool
}

// DialogSource enumerates the account's dialogs in server order.
type DialogSource interface {
	Dialogs(ctx context.Context, fn func(Dialog) error) error
}

// Entry is a listed channel.
type Entry struct {
	Title string
	ID    string
}

// List prints every joined channel as a fixed width table and returns the
// printed entries.
func List(ctx context.Context, src DialogSource, w io.Writer) ([]Entry, error) {
	fmt.Fprintln(w, "Channels your account has joined:")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "%-40s %-15s\n", "Channel Name", "Channel ID")
	fmt.Fprintln(w, strings.Repeat("-", 50))

	var entries []Entry
	err := src.Dialogs(ctx, func(d Dialog) error {
		if !d.IsChannel {
			return nil
		}
		e := Entry{Title: d.Title, ID: FormatID(d.ID)}
		entries = append(entries, e)
		_, err := fmt.Fprintf(w, "%-40s %-15s\n", e.Title, e.ID)
		return err
	})
	if err != nil {
		return entries, fmt.Errorf("list dialogs: %w", err)
	}
	return entries, nil
}
