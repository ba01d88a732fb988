package ripper

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "teleripper/pkg/errors"
	"teleripper/pkg/logger"
	"teleripper/pkg/media"
	"teleripper/pkg/ui"
)

type fakeSource struct {
	channels   map[string]Channel
	messages   []media.Message
	failIDs    map[int]error
	historyErr error
	lookups    []string
	downloads  []int
}

func (f *fakeSource) ResolveChannel(_ context.Context, identifier string) (Channel, error) {
	f.lookups = append(f.lookups, identifier)
	if ch, ok := f.channels[identifier]; ok {
		return ch, nil
	}
	return Channel{}, &NotFoundError{Identifier: identifier}
}

func (f *fakeSource) History(_ context.Context, _ Channel, limit int, fn func(media.Message) error) error {
	for i, msg := range f.messages {
		if limit > 0 && i >= limit {
			break
		}
		if err := fn(msg); err != nil {
			return err
		}
	}
	return f.historyErr
}

func (f *fakeSource) Download(_ context.Context, msg media.Message, path string) (int64, error) {
	f.downloads = append(f.downloads, msg.ID)
	if err := f.failIDs[msg.ID]; err != nil {
		// leave a partial file behind to prove it is cleaned up
		_ = os.WriteFile(path, []byte("partial"), 0644)
		return 0, err
	}
	data := []byte("content of message")
	return int64(len(data)), os.WriteFile(path, data, 0644)
}

var (
	news = Channel{ID: -1001234567890, Title: "Daily News!"}
	day  = time.Date(2024, 3, 9, 22, 15, 0, 0, time.UTC)
)

func newTestRipper(src Source) (*Ripper, *bytes.Buffer) {
	var out bytes.Buffer
	return New(src, WithOutput(&out), WithLogger(logger.NewNopLogger())), &out
}

func TestDownloadEndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := &fakeSource{
		channels: map[string]Channel{"-1001234567890": news},
		messages: []media.Message{
			{ID: 10, Date: day, Media: media.Photo{}},
			{ID: 11, Date: day, Media: media.Document{FileName: "clip.bin", MIMEType: "video/mp4", Video: true}},
			{ID: 12, Date: day, Media: media.Document{FileName: "late.mp4", Video: true}},
		},
	}
	r, out := newTestRipper(src)

	res, err := r.Download(context.Background(), Request{
		Channel: "-1001234567890",
		Dir:     dir,
		Limit:   2,
		Filter:  media.Filter(media.Videos),
	})
	require.NoError(t, err)

	channelDir := filepath.Join(dir, "Daily News_")
	assert.Equal(t, channelDir, res.Dir)
	assert.Equal(t, 1, res.Downloaded.Get(media.Videos))
	assert.Equal(t, 1, res.Total())
	assert.Equal(t, []int{11}, src.downloads)

	assert.FileExists(t, filepath.Join(channelDir, "videos", "clip.bin"))
	for _, c := range media.Categories {
		assert.DirExists(t, filepath.Join(channelDir, string(c)))
	}
	images, err := os.ReadDir(filepath.Join(channelDir, "images"))
	require.NoError(t, err)
	assert.Empty(t, images)

	assert.Equal(t,
		"Downloading media from channel: Daily News! (-1001234567890)\n"+
			"Downloading videos #1: clip.bin...\n"+
			"Successfully downloaded: clip.bin\n",
		out.String())
}

func TestDownloadIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := &fakeSource{
		channels: map[string]Channel{"news": news},
		messages: []media.Message{
			{ID: 1, Date: day, Media: media.Photo{}},
			{ID: 2, Date: day, Media: media.Document{MIMEType: "application/pdf"}},
			{ID: 3, Date: day},
			{ID: 4, Date: day, Media: media.Unsupported{Kind: "poll"}},
		},
	}
	r, out := newTestRipper(src)
	req := Request{Channel: "news", Dir: dir}

	first, err := r.Download(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Total())
	assert.Equal(t, 1, first.Downloaded.Get(media.Images))
	assert.Equal(t, 1, first.Downloaded.Get(media.Documents))
	assert.FileExists(t, filepath.Join(first.Dir, "images", "photo_20240309_1.jpg"))
	assert.FileExists(t, filepath.Join(first.Dir, "documents", "file_20240309_2.pdf"))

	out.Reset()
	second, err := r.Download(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Total())
	assert.Equal(t, 2, second.Existing)
	assert.False(t, second.Empty())
	assert.Len(t, src.downloads, 2)
	assert.Contains(t, out.String(), "File already exists, skipping: photo_20240309_1.jpg\n")
}

func TestDownloadFailureContinues(t *testing.T) {
	src := &fakeSource{
		channels: map[string]Channel{"news": news},
		messages: []media.Message{
			{ID: 1, Date: day, Media: media.Document{FileName: "a.zip"}},
			{ID: 2, Date: day, Media: media.Document{FileName: "b.zip"}},
		},
		failIDs: map[int]error{1: errors.New("FILE_REFERENCE_EXPIRED")},
	}
	test := logger.NewTestLogger()
	var out bytes.Buffer
	r := New(src, WithOutput(&out), WithLogger(test))

	res, err := r.Download(context.Background(), Request{Channel: "news", Dir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Total())
	assert.Equal(t, 2, res.Matched.Get(media.Archives))
	assert.NoFileExists(t, filepath.Join(res.Dir, "archives", "a.zip"))
	assert.NoFileExists(t, filepath.Join(res.Dir, "archives", "a.zip.part"))
	assert.FileExists(t, filepath.Join(res.Dir, "archives", "b.zip"))
	assert.Contains(t, out.String(), "Error downloading a.zip: FILE_REFERENCE_EXPIRED\n")
	assert.Contains(t, out.String(), "Downloading archives #2: b.zip...\n")
	assert.True(t, test.HasError())
}

func TestDownloadFilterSkipsWithoutCounting(t *testing.T) {
	src := &fakeSource{
		channels: map[string]Channel{"news": news},
		messages: []media.Message{
			{ID: 1, Date: day, Media: media.Photo{}},
			{ID: 2, Date: day, Media: media.Document{FileName: "song.mp3"}},
		},
	}
	r, _ := newTestRipper(src)

	res, err := r.Download(context.Background(), Request{
		Channel: "news",
		Dir:     t.TempDir(),
		Filter:  media.Filter(media.Videos),
	})
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Empty(t, src.downloads)
	assert.True(t, res.Summary().Empty)
}

func TestDownloadHistoryErrorAborts(t *testing.T) {
	apiErr := errors.New("CHANNEL_PRIVATE")
	src := &fakeSource{
		channels:   map[string]Channel{"news": news},
		messages:   []media.Message{{ID: 1, Date: day, Media: media.Photo{}}},
		historyErr: apiErr,
	}
	r, _ := newTestRipper(src)

	res, err := r.Download(context.Background(), Request{Channel: "news", Dir: t.TempDir()})
	require.ErrorIs(t, err, apiErr)
	assert.Equal(t, 1, res.Total())
}

func TestDownloadStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{
		channels: map[string]Channel{"news": news},
		messages: []media.Message{
			{ID: 1, Date: day, Media: media.Photo{}},
			{ID: 2, Date: day, Media: media.Photo{}},
		},
		failIDs: map[int]error{1: context.Canceled},
	}
	cancel()
	r, _ := newTestRipper(src)

	_, err := r.Download(ctx, Request{Channel: "news", Dir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{1}, src.downloads)
}

func TestResolveFallsBackToNormalizedID(t *testing.T) {
	src := &fakeSource{channels: map[string]Channel{"-1001234567890": news}}
	r, _ := newTestRipper(src)

	ch, err := r.Resolve(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.Equal(t, news, ch)
	assert.Equal(t, []string{"1234567890", "-1001234567890"}, src.lookups)
}

func TestResolveNotFound(t *testing.T) {
	src := &fakeSource{}
	r, _ := newTestRipper(src)

	_, err := r.Resolve(context.Background(), "-1009999")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeResolve))
	assert.ErrorIs(t, err, ErrChannelNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "-1009999", nf.Identifier)
	// already normalized, so only one lookup
	assert.Equal(t, []string{"-1009999"}, src.lookups)
}

func TestResolveNotFoundReportsNormalizedID(t *testing.T) {
	src := &fakeSource{}
	r, _ := newTestRipper(src)

	_, err := r.Resolve(context.Background(), "1234567890")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "-1001234567890", nf.Identifier)
	assert.Contains(t, err.Error(), "could not find channel with ID -1001234567890")
	assert.Equal(t, []string{"1234567890", "-1001234567890"}, src.lookups)

	_, err = r.Resolve(context.Background(), "@missing")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "@missing", nf.Identifier)
}

type failingResolver struct {
	fakeSource
	err error
}

func (f *failingResolver) ResolveChannel(context.Context, string) (Channel, error) {
	return Channel{}, f.err
}

func TestResolvePropagatesOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	r, _ := newTestRipper(&failingResolver{err: boom})

	_, err := r.Resolve(context.Background(), "123")
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrChannelNotFound))
}

type countingSender struct{ calls int }

func (c *countingSender) Send(string, string) error {
	c.calls++
	return nil
}

func TestNotifyOnCompletion(t *testing.T) {
	sender := &countingSender{}
	src := &fakeSource{
		channels: map[string]Channel{"news": news},
		messages: []media.Message{{ID: 1, Date: day, Media: media.Photo{}}},
	}
	r := New(src,
		WithOutput(&bytes.Buffer{}),
		WithLogger(logger.NewNopLogger()),
		WithNotifier(ui.NewNotifierWithSender(sender, true)))

	req := Request{Channel: "news", Dir: t.TempDir()}
	_, err := r.Download(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, sender.calls)

	// nothing new, nothing to announce
	_, err = r.Download(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, sender.calls)
}

func TestResultSummary(t *testing.T) {
	res := Result{Dir: "out"}.
		matched(media.Videos).downloaded(media.Videos).
		matched(media.Other).existing()

	s := res.Summary()
	assert.Equal(t, 1, s.Total)
	assert.Equal(t, 1, s.Existing)
	assert.False(t, s.Empty)
	require.Len(t, s.Rows, media.NumCategories)
	assert.Equal(t, ui.SummaryRow{Label: "videos", Count: 1}, s.Rows[0])

	// values, not shared state
	next := res.downloaded(media.Images)
	assert.Equal(t, 1, res.Total())
	assert.Equal(t, 2, next.Total())
}
