package telegram

import (
	"strings"

	"github.com/gotd/td/tg"

	"teleripper/pkg/channels"
)

// dialogPage indexes one messages.getDialogs answer.
type dialogPage struct {
	dialogs  []*tg.Dialog
	channels map[int64]*tg.Channel
	chats    map[int64]*tg.Chat
	users    map[int64]*tg.User
	dates    map[int]int
	// complete is set when the server returned every dialog at once.
	complete bool
}

type dialogOffset struct {
	OffsetID   int
	OffsetDate int
	OffsetPeer tg.InputPeerClass
}

func newDialogPage(res tg.MessagesDialogsClass) (*dialogPage, bool) {
	var (
		dialogs  []tg.DialogClass
		chats    []tg.ChatClass
		users    []tg.UserClass
		messages []tg.MessageClass
		complete bool
	)
	switch r := res.(type) {
	case *tg.MessagesDialogs:
		dialogs, chats, users, messages, complete = r.Dialogs, r.Chats, r.Users, r.Messages, true
	case *tg.MessagesDialogsSlice:
		dialogs, chats, users, messages = r.Dialogs, r.Chats, r.Users, r.Messages
	default:
		return nil, false
	}

	p := &dialogPage{
		channels: make(map[int64]*tg.Channel),
		chats:    make(map[int64]*tg.Chat),
		users:    make(map[int64]*tg.User),
		dates:    make(map[int]int),
		complete: complete,
	}
	for _, d := range dialogs {
		if dialog, ok := d.(*tg.Dialog); ok {
			p.dialogs = append(p.dialogs, dialog)
		}
	}
	for _, c := range chats {
		switch v := c.(type) {
		case *tg.Channel:
			p.channels[v.ID] = v
		case *tg.Chat:
			p.chats[v.ID] = v
		}
	}
	for _, u := range users {
		if user, ok := u.(*tg.User); ok {
			p.users[user.ID] = user
		}
	}
	for _, m := range messages {
		switch v := m.(type) {
		case *tg.Message:
			p.dates[v.ID] = v.Date
		case *tg.MessageService:
			p.dates[v.ID] = v.Date
		}
	}
	return p, true
}

// list converts the page. Dialogs whose peer is missing from the page are
// dropped.
func (p *dialogPage) list() []channels.Dialog {
	out := make([]channels.Dialog, 0, len(p.dialogs))
	for _, d := range p.dialogs {
		switch peer := d.Peer.(type) {
		case *tg.PeerChannel:
			if ch, ok := p.channels[peer.ChannelID]; ok {
				out = append(out, channels.Dialog{ID: channels.MarkedID(ch.ID), Title: ch.Title, IsChannel: true})
			}
		case *tg.PeerChat:
			if chat, ok := p.chats[peer.ChatID]; ok {
				out = append(out, channels.Dialog{ID: -chat.ID, Title: chat.Title})
			}
		case *tg.PeerUser:
			if user, ok := p.users[peer.UserID]; ok {
				out = append(out, channels.Dialog{ID: user.ID, Title: displayName(user)})
			}
		}
	}
	return out
}

// next computes the offsets of the following page from the last dialog.
func (p *dialogPage) next() (dialogOffset, bool) {
	if len(p.dialogs) == 0 {
		return dialogOffset{}, false
	}
	last := p.dialogs[len(p.dialogs)-1]

	var peer tg.InputPeerClass
	switch v := last.Peer.(type) {
	case *tg.PeerChannel:
		ch, ok := p.channels[v.ChannelID]
		if !ok {
			return dialogOffset{}, false
		}
		peer = &tg.InputPeerChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}
	case *tg.PeerChat:
		peer = &tg.InputPeerChat{ChatID: v.ChatID}
	case *tg.PeerUser:
		user, ok := p.users[v.UserID]
		if !ok {
			return dialogOffset{}, false
		}
		peer = &tg.InputPeerUser{UserID: user.ID, AccessHash: user.AccessHash}
	default:
		return dialogOffset{}, false
	}

	return dialogOffset{
		OffsetID:   last.TopMessage,
		OffsetDate: p.dates[last.TopMessage],
		OffsetPeer: peer,
	}, true
}

func displayName(u *tg.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
