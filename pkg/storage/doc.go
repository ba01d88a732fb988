// Package storage lays out downloaded media on disk.
//
// Every channel gets its own directory named after its sanitized title, with
// one subdirectory per media category:
//
//	downloaded_media/
//	  My Channel/
//	    videos/
//	    images/
//	    ...
//	    other/
//
// The presence of a file at its final path is the only record that it was
// downloaded. Files are written to a ".part" sibling first and renamed into
// place once complete, so an interrupted transfer is retried on the next run.
//
// Usage:
//
//	m, err := storage.NewManager("downloaded_media", "My Channel", media.Categories)
//	if err != nil {
//	    return err
//	}
//	if !m.Exists(media.Videos, "clip.mp4") {
//	    err = m.Commit(media.Videos, "clip.mp4", func(tmp string) error {
//	        return fetch(ctx, tmp)
//	    })
//	}
package storage
