package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/gotd/td/tgerr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"

	"teleripper/pkg/auth"
	apperrors "teleripper/pkg/errors"
	"teleripper/pkg/ripper"
	"teleripper/pkg/ui"
)

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "channel not found",
			err:  apperrors.Resolve("resolve channel", &ripper.NotFoundError{Identifier: "-1001"}),
			want: []string{
				"Error: Could not find channel with ID -1001.",
				"Use --lc to list channels with their correct IDs.",
			},
		},
		{
			name: "bad api id",
			err:  apperrors.Config("read credentials", fmt.Errorf("%w; reset the configuration with --reset-config", auth.ErrInvalidAPIID)),
			want: []string{"Error: API ID must be a number; reset the configuration with --reset-config"},
		},
		{
			name: "connection",
			err:  fmt.Errorf("dial: %w", &net.OpError{Op: "dial", Err: errors.New("refused")}),
			want: []string{"Error: Could not connect to Telegram. Please check your internet connection."},
		},
		{
			name: "api",
			err:  tgerr.New(400, "CHANNEL_PRIVATE"),
			want: []string{"A Telegram API error occurred: rpc error code 400: CHANNEL_PRIVATE"},
		},
		{
			name: "interrupted",
			err:  fmt.Errorf("get history: %w", context.Canceled),
			want: []string{"Interrupted."},
		},
		{
			name: "unexpected",
			err:  errors.New("boom"),
			want: []string{"An unexpected error occurred: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeError(tt.err))
		})
	}
}

func TestReportErrorPrintsTraceForUnexpected(t *testing.T) {
	ui.SetColorEnabled(false)
	defer ui.SetColorEnabled(true)

	var buf bytes.Buffer
	reportError(&buf, errors.New("boom"))
	assert.Equal(t, "An unexpected error occurred: boom\nboom\n", buf.String())

	buf.Reset()
	reportError(&buf, apperrors.Config("load settings", errors.New("bad yaml")))
	assert.Equal(t, "Error: bad yaml\n", buf.String())
}

func TestFlagAliases(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetNormalizeFunc(normalizeFlagName)
	lc := fs.Bool("lc", false, "")
	d := fs.String("d", "", "")

	assert.NoError(t, fs.Parse([]string{"--listchannels", "--download", "-100123"}))
	assert.True(t, *lc)
	assert.Equal(t, "-100123", *d)

	fs2 := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs2.SetNormalizeFunc(normalizeFlagName)
	d2 := fs2.String("d", "", "")
	assert.NoError(t, fs2.Parse([]string{"--d", "news"}))
	assert.Equal(t, "news", *d2)
}

func TestFlagOverridesLogLevel(t *testing.T) {
	t.Cleanup(func() { logLevel, verbose, quiet, noColor = "", false, false, false })

	cmd := &cobra.Command{}
	extra := map[string]interface{}{"dir": "out"}

	logLevel = "info"
	assert.Equal(t, map[string]interface{}{"dir": "out", "log-level": "info"}, flagOverrides(cmd, extra))

	verbose = true
	assert.Equal(t, "debug", flagOverrides(cmd, extra)["log-level"])

	quiet = true
	noColor = true
	flags := flagOverrides(cmd, nil)
	assert.Equal(t, "error", flags["log-level"])
	assert.Equal(t, true, flags["no-color"])
	assert.NotContains(t, flags, "notifications")
}
