package ripper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"teleripper/pkg/channels"
	apperrors "teleripper/pkg/errors"
	"teleripper/pkg/logger"
	"teleripper/pkg/media"
	"teleripper/pkg/storage"
	"teleripper/pkg/ui"
)

// DefaultDir is used when a request names no directory.
const DefaultDir = "downloaded_media"

// Request describes one download run.
type Request struct {
	Channel string
	Dir     string
	// Limit caps the number of messages inspected; 0 means the whole history.
	Limit  int
	Filter media.Filter
}

// Ripper downloads the media of a channel into a categorized tree.
type Ripper struct {
	source   Source
	out      io.Writer
	logger   logger.Logger
	notifier *ui.Notifier
}

// Option configures a Ripper.
type Option func(*Ripper)

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(r *Ripper) { r.out = w }
}

// WithLogger replaces the global logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Ripper) { r.logger = l }
}

// WithNotifier sends a desktop notification when a run completes.
func WithNotifier(n *ui.Notifier) Option {
	return func(r *Ripper) { r.notifier = n }
}

// New creates a Ripper reading from source.
func New(source Source, opts ...Option) *Ripper {
	r := &Ripper{
		source: source,
		out:    os.Stdout,
		logger: logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve finds the channel, retrying with the -100 form of a bare id. The
// not found error names the last identifier tried.
func (r *Ripper) Resolve(ctx context.Context, identifier string) (Channel, error) {
	ch, err := r.source.ResolveChannel(ctx, identifier)
	if err == nil {
		return ch, nil
	}
	if !errors.Is(err, ErrChannelNotFound) {
		return Channel{}, err
	}

	tried := identifier
	if normalized := channels.NormalizeID(identifier); normalized != identifier {
		tried = normalized
		r.logger.DebugWithFields("Retrying lookup with normalized id", map[string]interface{}{
			"identifier": identifier,
			"normalized": normalized,
		})
		ch, err = r.source.ResolveChannel(ctx, normalized)
		if err == nil {
			return ch, nil
		}
		if !errors.Is(err, ErrChannelNotFound) {
			return Channel{}, err
		}
	}

	return Channel{}, apperrors.Resolve("resolve channel", &NotFoundError{Identifier: tried})
}

// Download runs req and returns what happened. Failed transfers are counted
// and the run continues; history and lookup errors abort it and are returned
// together with the partial result.
func (r *Ripper) Download(ctx context.Context, req Request) (Result, error) {
	if req.Dir == "" {
		req.Dir = DefaultDir
	}
	if req.Filter == "" {
		req.Filter = media.All
	}

	ch, err := r.Resolve(ctx, req.Channel)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintf(r.out, "Downloading media from channel: %s (%s)\n", ch.Title, channels.FormatID(ch.ID))

	store, err := storage.NewManager(req.Dir, ch.Title, media.Categories)
	if err != nil {
		return Result{}, apperrors.Download("prepare directories", err)
	}

	log := r.logger.WithFields(map[string]interface{}{
		"channel":    ch.Title,
		"channel_id": ch.ID,
	})
	log.InfoWithFields("Starting download", map[string]interface{}{
		"dir":    store.Dir(),
		"limit":  req.Limit,
		"filter": string(req.Filter),
	})

	tracker := ui.NewStatusTracker()
	res := Result{Dir: store.Dir()}

	err = r.source.History(ctx, ch, req.Limit, func(msg media.Message) error {
		target, ok := media.Resolve(msg)
		if !ok {
			return nil
		}
		if !req.Filter.Allows(target.Category) {
			return nil
		}
		res = res.matched(target.Category)

		if store.Exists(target.Category, target.FileName) {
			fmt.Fprintf(r.out, "File already exists, skipping: %s\n", target.FileName)
			res = res.existing()
			tracker.Skipped()
			return nil
		}

		fmt.Fprintf(r.out, "Downloading %s #%d: %s...\n",
			target.Category, res.Matched.Get(target.Category), target.FileName)

		var size int64
		err := store.Commit(target.Category, target.FileName, func(tmp string) error {
			var err error
			size, err = r.source.Download(ctx, msg, tmp)
			return err
		})
		logger.LogDownload(log, ch.Title, msg.ID, string(target.Category), target.FileName, err)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			fmt.Fprintf(r.out, "Error downloading %s: %v\n", target.FileName, err)
			res = res.failed()
			tracker.Failed()
			return nil
		}

		fmt.Fprintf(r.out, "Successfully downloaded: %s\n", target.FileName)
		res = res.downloaded(target.Category)
		tracker.Downloaded(size)
		return nil
	})
	if err != nil {
		log.WithError(err).WarnWithFields("Download aborted", tracker.Fields())
		return res, err
	}

	log.InfoWithFields("Download finished", tracker.Fields())
	r.notify(ch, res)
	return res, nil
}

func (r *Ripper) notify(ch Channel, res Result) {
	if res.Total() == 0 {
		return
	}
	msg := fmt.Sprintf("%s: %d new files", ch.Title, res.Total())
	if err := r.notifier.Notify("Download complete", msg); err != nil {
		r.logger.WithError(err).Debug("Desktop notification failed")
	}
}

// PrintSummary writes the end of run report for res to w.
func PrintSummary(w io.Writer, res Result) {
	ui.PrintSummary(w, res.Summary())
}
