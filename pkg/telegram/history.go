package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/gotd/td/tg"

	"teleripper/pkg/media"
	"teleripper/pkg/ripper"
)

// History walks the channel newest first. Service messages count toward
// limit but are not passed to fn.
func (s *Session) History(ctx context.Context, ch ripper.Channel, limit int, fn func(media.Message) error) error {
	peer, err := s.inputPeer(ch)
	if err != nil {
		return err
	}

	offsetID, seen := 0, 0
	for {
		pageSize := s.pageSize
		if limit > 0 && limit-seen < pageSize {
			pageSize = limit - seen
		}

		res, err := s.api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
			Peer:     peer,
			OffsetID: offsetID,
			Limit:    pageSize,
		})
		if err != nil {
			return fmt.Errorf("get history: %w", err)
		}

		batch := historyMessages(res)
		if len(batch) == 0 {
			return nil
		}
		s.log.DebugWithFields("Fetched history page", map[string]interface{}{
			"channel_id": ch.ID,
			"offset_id":  offsetID,
			"count":      len(batch),
		})

		for _, m := range batch {
			seen++
			offsetID = m.GetID()
			if msg, ok := m.(*tg.Message); ok {
				if err := fn(convertMessage(msg)); err != nil {
					return err
				}
			}
			if limit > 0 && seen >= limit {
				return nil
			}
		}
	}
}

func historyMessages(res tg.MessagesMessagesClass) []tg.MessageClass {
	switch r := res.(type) {
	case *tg.MessagesMessages:
		return r.Messages
	case *tg.MessagesMessagesSlice:
		return r.Messages
	case *tg.MessagesChannelMessages:
		return r.Messages
	default:
		return nil
	}
}

// convertMessage extracts the attachment of msg. Ref keeps the *tg.Photo or
// *tg.Document needed to fetch the file later.
func convertMessage(msg *tg.Message) media.Message {
	out := media.Message{
		ID:   msg.ID,
		Date: time.Unix(int64(msg.Date), 0).UTC(),
	}

	switch m := msg.Media.(type) {
	case nil, *tg.MessageMediaEmpty:
	case *tg.MessageMediaPhoto:
		if photo, ok := m.Photo.(*tg.Photo); ok {
			out.Media, out.Ref = media.Photo{}, photo
		} else {
			out.Media = media.Unsupported{Kind: "photoEmpty"}
		}
	case *tg.MessageMediaDocument:
		if doc, ok := m.Document.(*tg.Document); ok {
			out.Media, out.Ref = convertDocument(doc), doc
		} else {
			out.Media = media.Unsupported{Kind: "documentEmpty"}
		}
	default:
		out.Media = media.Unsupported{Kind: m.TypeName()}
	}
	return out
}

func convertDocument(doc *tg.Document) media.Document {
	d := media.Document{MIMEType: doc.MimeType}
	for _, attr := range doc.Attributes {
		switch a := attr.(type) {
		case *tg.DocumentAttributeFilename:
			if d.FileName == "" {
				d.FileName = a.FileName
			}
		case *tg.DocumentAttributeVideo:
			if !a.RoundMessage {
				d.Video = true
			} else if !d.Video {
				d.Round = true
			}
		}
	}
	if d.Video {
		d.Round = false
	}
	return d
}
