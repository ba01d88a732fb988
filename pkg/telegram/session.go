package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"teleripper/pkg/channels"
	"teleripper/pkg/logger"
	"teleripper/pkg/ripper"
)

// Session is an authorized connection. It implements channels.DialogSource
// and ripper.Source.
type Session struct {
	api        *tg.Client
	pageSize   int
	log        logger.Logger
	downloader *downloader.Downloader

	// channels caches access hashes by bare channel id.
	channels map[int64]*tg.Channel
	scanned  bool
}

var (
	_ channels.DialogSource = (*Session)(nil)
	_ ripper.Source         = (*Session)(nil)
)

func newSession(api *tg.Client, pageSize int, log logger.Logger) *Session {
	return &Session{
		api:        api,
		pageSize:   pageSize,
		log:        log,
		downloader: downloader.NewDownloader(),
		channels:   make(map[int64]*tg.Channel),
	}
}

// Dialogs walks every dialog of the account in server order.
func (s *Session) Dialogs(ctx context.Context, fn func(channels.Dialog) error) error {
	req := &tg.MessagesGetDialogsRequest{
		OffsetPeer: &tg.InputPeerEmpty{},
		Limit:      s.pageSize,
	}

	for {
		res, err := s.api.MessagesGetDialogs(ctx, req)
		if err != nil {
			return fmt.Errorf("get dialogs: %w", err)
		}

		page, ok := newDialogPage(res)
		if !ok {
			return nil
		}
		for _, ch := range page.channels {
			s.channels[ch.ID] = ch
		}
		for _, d := range page.list() {
			if err := fn(d); err != nil {
				return err
			}
		}

		if page.complete || len(page.dialogs) < req.Limit {
			s.scanned = true
			return nil
		}
		next, ok := page.next()
		if !ok || (next.OffsetID == req.OffsetID && next.OffsetDate == req.OffsetDate) {
			s.scanned = true
			return nil
		}
		req.OffsetID, req.OffsetDate, req.OffsetPeer = next.OffsetID, next.OffsetDate, next.OffsetPeer
	}
}

// ResolveChannel accepts a -100 prefixed id of a joined channel or a
// public username, with or without @ or a t.me link.
func (s *Session) ResolveChannel(ctx context.Context, identifier string) (ripper.Channel, error) {
	if raw, ok := channels.RawID(identifier); ok {
		return s.channelByID(ctx, identifier, raw)
	}
	if _, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return ripper.Channel{}, &ripper.NotFoundError{Identifier: identifier}
	}

	username, ok := parseUsername(identifier)
	if !ok {
		return ripper.Channel{}, &ripper.NotFoundError{Identifier: identifier}
	}
	return s.channelByUsername(ctx, identifier, username)
}

func (s *Session) channelByID(ctx context.Context, identifier string, raw int64) (ripper.Channel, error) {
	if ch, ok := s.channels[raw]; ok {
		return channelOf(ch), nil
	}
	if !s.scanned {
		s.log.WithField("channel_id", identifier).Debug("Scanning dialogs for channel")
		if err := s.Dialogs(ctx, func(channels.Dialog) error { return nil }); err != nil {
			return ripper.Channel{}, err
		}
		if ch, ok := s.channels[raw]; ok {
			return channelOf(ch), nil
		}
	}
	return ripper.Channel{}, &ripper.NotFoundError{Identifier: identifier}
}

func (s *Session) channelByUsername(ctx context.Context, identifier, username string) (ripper.Channel, error) {
	resolved, err := s.api.ContactsResolveUsername(ctx, username)
	if err != nil {
		if tgerr.Is(err, "USERNAME_NOT_OCCUPIED", "USERNAME_INVALID") {
			return ripper.Channel{}, &ripper.NotFoundError{Identifier: identifier}
		}
		return ripper.Channel{}, fmt.Errorf("resolve username: %w", err)
	}

	for _, chat := range resolved.Chats {
		if ch, ok := chat.(*tg.Channel); ok {
			s.channels[ch.ID] = ch
			return channelOf(ch), nil
		}
	}
	return ripper.Channel{}, &ripper.NotFoundError{Identifier: identifier}
}

func (s *Session) inputPeer(ch ripper.Channel) (*tg.InputPeerChannel, error) {
	raw, ok := channels.RawID(channels.FormatID(ch.ID))
	if !ok {
		return nil, fmt.Errorf("invalid channel id %d", ch.ID)
	}
	cached, ok := s.channels[raw]
	if !ok {
		return nil, &ripper.NotFoundError{Identifier: channels.FormatID(ch.ID)}
	}
	return &tg.InputPeerChannel{ChannelID: cached.ID, AccessHash: cached.AccessHash}, nil
}

func channelOf(ch *tg.Channel) ripper.Channel {
	return ripper.Channel{ID: channels.MarkedID(ch.ID), Title: ch.Title}
}

func parseUsername(identifier string) (string, bool) {
	name := strings.TrimSpace(identifier)
	for _, prefix := range []string{"https://", "http://"} {
		name = strings.TrimPrefix(name, prefix)
	}
	for _, prefix := range []string{"t.me/", "telegram.me/", "@"} {
		name = strings.TrimPrefix(name, prefix)
	}
	name = strings.TrimSuffix(name, "/")
	if name == "" || strings.ContainsAny(name, "/?# ") {
		return "", false
	}
	return name, true
}
