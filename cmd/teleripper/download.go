package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"teleripper/pkg/auth"
	"teleripper/pkg/channels"
	"teleripper/pkg/config"
	apperrors "teleripper/pkg/errors"
	"teleripper/pkg/logger"
	"teleripper/pkg/media"
	"teleripper/pkg/ratelimit"
	"teleripper/pkg/ripper"
	"teleripper/pkg/session"
	"teleripper/pkg/telegram"
	"teleripper/pkg/ui"
)

var (
	// Action flags
	listChannels bool
	channelID    string
	resetConfig  bool

	// Download flags
	limit     int
	outputDir string
	mediaType string
	phone     string
)

func init() {
	flags := rootCmd.Flags()
	flags.SetNormalizeFunc(normalizeFlagName)

	flags.BoolVar(&listChannels, "lc", false, "list all channels (alias --listchannels)")
	flags.StringVar(&channelID, "d", "", "download media from channel `CHANNEL_ID` (alias --download)")
	flags.BoolVar(&resetConfig, "reset-config", false, "reset API configuration")

	flags.IntVar(&limit, "limit", 0, "limit number of messages to check")
	flags.StringVar(&outputDir, "dir", "", "download directory (default: downloaded_media)")
	flags.StringVar(&mediaType, "type", "all", "type of media to download (all, videos, images, documents, audio, archives)")
	flags.StringVar(&phone, "phone", os.Getenv("TELERIPPER_PHONE"), "phone number used when logging in")

	rootCmd.MarkFlagsOneRequired("lc", "d", "reset-config")
	rootCmd.MarkFlagsMutuallyExclusive("lc", "d", "reset-config")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if resetConfig {
		return runResetConfig()
	}

	extra := make(map[string]interface{})
	if cmd.Flags().Changed("dir") {
		extra["dir"] = outputDir
	}
	if cmd.Flags().Changed("type") {
		extra["type"] = mediaType
	}
	if cmd.Flags().Changed("limit") {
		extra["limit"] = limit
	}

	cfg, err := loadConfig(cmd, extra)
	if err != nil {
		return err
	}
	filter, err := media.ParseFilter(cfg.Download.Types)
	if err != nil {
		return apperrors.Config("parse media type", err)
	}

	prompter := auth.NewTerminalPrompter()
	creds, err := loadCredentials(prompter)
	if err != nil {
		return err
	}

	client, err := newClient(cfg, creds, prompter)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.WithField("version", version).Info("TeleRipper starting")

	return client.Run(ctx, func(ctx context.Context, s *telegram.Session) error {
		if listChannels {
			_, err := channels.List(ctx, s, ui.Output())
			return err
		}

		out := ui.Output()
		if ui.IsQuietMode() {
			out = io.Discard
		}

		r := ripper.New(s,
			ripper.WithOutput(out),
			ripper.WithNotifier(ui.NewNotifier(cfg.UI.Notifications)))

		res, err := r.Download(ctx, ripper.Request{
			Channel: channelID,
			Dir:     cfg.Download.Directory,
			Limit:   cfg.Download.Limit,
			Filter:  filter,
		})
		if err != nil {
			return err
		}
		ripper.PrintSummary(out, res)
		return nil
	})
}

// loadCredentials prefers TELERIPPER_API_ID/TELERIPPER_API_HASH and falls
// back to the INI file, asking for the values on first run.
func loadCredentials(p *auth.TerminalPrompter) (auth.Credentials, error) {
	creds, ok, err := auth.FromEnv()
	if ok {
		if err != nil {
			return auth.Credentials{}, apperrors.Config("read credentials from environment", err)
		}
		logger.Debug("Using credentials from environment")
		return creds, nil
	}

	store, err := auth.DefaultINIStore()
	if err != nil {
		return auth.Credentials{}, apperrors.Config("locate credentials", err)
	}

	creds, created, err := auth.Ensure(store, p)
	switch {
	case errors.Is(err, auth.ErrInvalidAPIID):
		return auth.Credentials{}, apperrors.Config("read credentials",
			fmt.Errorf("%w; reset the configuration with --reset-config", err))
	case err != nil:
		return auth.Credentials{}, apperrors.Config("read credentials",
			fmt.Errorf("invalid config file %s: %w; delete it and run again", store.Path(), err))
	}

	if created {
		fmt.Fprintf(ui.Output(), "Configuration saved to %s\n", store.Path())
	}
	logger.WithField("credentials", creds.Masked().APIHash).Debug("Loaded API credentials")
	return creds, nil
}

func newClient(cfg *config.Config, creds auth.Credentials, p *auth.TerminalPrompter) (*telegram.Client, error) {
	dir, err := config.AppDir()
	if err != nil {
		return nil, apperrors.Config("locate app directory", err)
	}

	storage, err := session.New(session.Options{
		Backend:    cfg.Telegram.SessionBackend,
		Name:       creds.SessionName,
		Dir:        dir,
		Passphrase: creds.APIHash,
	})
	if err != nil {
		return nil, apperrors.Config("open session storage", err)
	}

	return telegram.New(telegram.Config{
		APIID:       creds.APIID,
		APIHash:     creds.APIHash,
		Storage:     storage,
		Auth:        telegram.NewTerminalAuth(p, phone),
		DialTimeout: cfg.Telegram.DialTimeout,
		Limiter:     ratelimit.NewTokenBucket(cfg.Telegram.RequestsPerSecond, cfg.Telegram.Burst),
		PageSize:    cfg.Telegram.PageSize,
		Logger:      logger.GetLogger(),
	}), nil
}

func runResetConfig() error {
	store, err := auth.DefaultINIStore()
	if err != nil {
		return apperrors.Config("locate credentials", err)
	}

	outcome, err := auth.Reset(store, auth.NewTerminalPrompter())
	if err != nil {
		return apperrors.Config("reset credentials", err)
	}

	out := ui.Output()
	switch outcome {
	case auth.ResetNothing:
		fmt.Fprintln(out, "No configuration file found. Nothing to reset.")
	case auth.ResetCancelled:
		fmt.Fprintln(out, "Reset cancelled.")
	case auth.ResetDone:
		fmt.Fprintln(out, "Configuration reset. You'll be prompted for API credentials on next run.")
	}
	return nil
}
