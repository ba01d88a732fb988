package media

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Media is the attachment carried by a message. The concrete type is one
// of Photo, Document or Unsupported.
type Media interface {
	isMedia()
}

// Photo is a compressed image attachment.
type Photo struct{}

// Document is any file attachment, including videos, voice notes and stickers.
type Document struct {
	// FileName comes from the filename attribute and may be empty.
	FileName string
	MIMEType string
	// Video is set when a video attribute is present.
	Video bool
	// Round marks video notes (circular video messages).
	Round bool
}

// Unsupported covers every other attachment kind: polls, geo points, web pages.
type Unsupported struct {
	Kind string
}

func (Photo) isMedia()       {}
func (Document) isMedia()    {}
func (Unsupported) isMedia() {}

// Message is a single history entry reduced to what the downloader needs.
type Message struct {
	ID    int
	Date  time.Time
	Media Media
	// Ref is an opaque handle the source uses to fetch the file contents.
	Ref any
}

// Target is the resolved destination of a downloadable attachment.
type Target struct {
	Category Category
	FileName string
}

// Resolve decides where an attachment goes. ok is false for messages
// without media or with unsupported media.
func Resolve(msg Message) (t Target, ok bool) {
	switch m := msg.Media.(type) {
	case Photo:
		return Target{
			Category: Images,
			FileName: fmt.Sprintf("photo_%s_%d.jpg", stamp(msg.Date), msg.ID),
		}, true
	case Document:
		name := SafeFileName(m.FileName)
		if name == "" {
			name = fmt.Sprintf("file_%s_%d.%s", stamp(msg.Date), msg.ID, ExtFromMIME(m.MIMEType))
		}
		category := Classify(name)
		if m.Video && !m.Round {
			category = Videos
		}
		return Target{Category: category, FileName: name}, true
	default:
		return Target{}, false
	}
}

// ExtFromMIME derives a file extension from a MIME type's subtype.
func ExtFromMIME(mime string) string {
	i := strings.LastIndex(mime, "/")
	if i < 0 {
		return "bin"
	}
	switch ext := mime[i+1:]; ext {
	case "jpeg":
		return "jpg"
	case "quicktime":
		return "mov"
	default:
		return ext
	}
}

// SafeFileName strips any directory components from a sender supplied name.
func SafeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." || name == ".." {
		return ""
	}
	return name
}

func stamp(t time.Time) string {
	return t.UTC().Format("20060102")
}
