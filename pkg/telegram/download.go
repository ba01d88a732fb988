package telegram

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gotd/td/tg"

	"teleripper/pkg/media"
)

// ErrNoFile is returned for messages without a downloadable attachment.
var ErrNoFile = errors.New("message has no downloadable file")

// Download saves the attachment of msg to path.
func (s *Session) Download(ctx context.Context, msg media.Message, path string) (int64, error) {
	loc, err := fileLocation(msg.Ref)
	if err != nil {
		return 0, err
	}

	if _, err := s.downloader.Download(s.api, loc).ToPath(ctx, path); err != nil {
		return 0, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func fileLocation(ref any) (tg.InputFileLocationClass, error) {
	switch v := ref.(type) {
	case *tg.Photo:
		size := largestPhotoSize(v.Sizes)
		if size == "" {
			return nil, fmt.Errorf("photo %d: no size available", v.ID)
		}
		return &tg.InputPhotoFileLocation{
			ID:            v.ID,
			AccessHash:    v.AccessHash,
			FileReference: v.FileReference,
			ThumbSize:     size,
		}, nil
	case *tg.Document:
		return &tg.InputDocumentFileLocation{
			ID:            v.ID,
			AccessHash:    v.AccessHash,
			FileReference: v.FileReference,
		}, nil
	default:
		return nil, ErrNoFile
	}
}

// largestPhotoSize picks the size type with the most pixels.
func largestPhotoSize(sizes []tg.PhotoSizeClass) string {
	best, bestArea := "", -1
	for _, s := range sizes {
		var typ string
		var area int
		switch sz := s.(type) {
		case *tg.PhotoSize:
			typ, area = sz.Type, sz.W*sz.H
		case *tg.PhotoSizeProgressive:
			typ, area = sz.Type, sz.W*sz.H
		case *tg.PhotoCachedSize:
			typ, area = sz.Type, sz.W*sz.H
		default:
			continue
		}
		if area > bestArea {
			best, bestArea = typ, area
		}
	}
	return best
}
