package ui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	prevOut, prevErr := Output(), errOut
	SetOutput(&stdout, &stderr)
	SetColorEnabled(false)
	t.Cleanup(func() {
		SetOutput(prevOut, prevErr)
		SetColorEnabled(true)
		SetQuietMode(false)
	})
	return &stdout, &stderr
}

func TestPrintHelpers(t *testing.T) {
	stdout, stderr := captureOutput(t)

	PrintError("Error", "boom")
	PrintWarning("careful")
	PrintSuccess("done")
	PrintInfo("Config file", "/tmp/settings.yaml")
	PrintHighlight("Channels")

	assert.Equal(t, "Error: boom\ncareful\n", stderr.String())
	assert.Equal(t, "done\nConfig file: /tmp/settings.yaml\nChannels\n", stdout.String())
}

func TestQuietModeKeepsErrors(t *testing.T) {
	stdout, stderr := captureOutput(t)
	SetQuietMode(true)

	PrintSuccess("done")
	PrintInfo("a", "b")
	PrintError("failed")

	assert.Empty(t, stdout.String())
	assert.Equal(t, "failed\n", stderr.String())
}

func TestColorDisabledIsPlain(t *testing.T) {
	captureOutput(t)
	assert.Equal(t, "text", Red("text"))
	assert.Equal(t, "text", Dim("text"))
}

type recordingSender struct {
	calls []string
	err   error
}

func (r *recordingSender) Send(title, message string) error {
	r.calls = append(r.calls, title+"|"+message)
	return r.err
}

func TestNotifier(t *testing.T) {
	sender := &recordingSender{}

	require.NoError(t, NewNotifierWithSender(sender, false).Notify("a", "b"))
	assert.Empty(t, sender.calls)

	require.NoError(t, NewNotifierWithSender(sender, true).Notify("Download complete", "3 files"))
	assert.Equal(t, []string{"Download complete|3 files"}, sender.calls)

	sender.err = errors.New("no daemon")
	assert.Error(t, NewNotifierWithSender(sender, true).Notify("a", "b"))

	var nilNotifier *Notifier
	assert.NoError(t, nilNotifier.Notify("a", "b"))
}

func TestStatusTracker(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	st := newStatusTracker(func() time.Time { return now })

	st.Downloaded(1024)
	st.Downloaded(2048)
	st.Skipped()
	st.Failed()
	now = start.Add(2 * time.Minute)

	downloaded, skipped, failed := st.Counts()
	assert.Equal(t, 2, downloaded)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2*time.Minute, st.GetElapsedTime())
	assert.InDelta(t, 1.0, st.GetDownloadRate(), 0.0001)
	assert.Equal(t, "downloaded 2, skipped 1, failed 1 in 2m0s (3.0 KiB)", st.String())
	assert.Equal(t, int64(3072), st.Fields()["bytes"])
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:               "0 B",
		1023:            "1023 B",
		1024:            "1.0 KiB",
		1536:            "1.5 KiB",
		5 * 1024 * 1024: "5.0 MiB",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatBytes(in))
	}
}

func TestPrintSummary(t *testing.T) {
	captureOutput(t)

	var buf bytes.Buffer
	PrintSummary(&buf, DownloadSummary{
		Rows: []SummaryRow{
			{Label: "videos", Count: 1},
			{Label: "images", Count: 0},
			{Label: "other", Count: 2},
		},
		Total:    3,
		Existing: 4,
		Dir:      "downloaded_media/News",
	})

	rule := "----------------------------------------\n"
	want := "\nDownload Summary:\n" + rule +
		"Videos: 1 files\nOther: 2 files\n" + rule +
		"Total: 3 files\nAlready present: 4 files\nFiles saved to: downloaded_media/News\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, DownloadSummary{Empty: true, Dir: "x"})
	assert.Equal(t, "No media files found in this channel.\n", buf.String())
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Videos", Capitalize("videos"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Élan", Capitalize("éLAN"))
}
