package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"teleripper/pkg/config"
	apperrors "teleripper/pkg/errors"
	"teleripper/pkg/logger"
	"teleripper/pkg/ripper"
	"teleripper/pkg/ui"
)

var (
	// Version information
	version   = "3.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile    string
	logLevel      string
	noColor       bool
	notifications bool
	quiet         bool
	verbose       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "teleripper",
	Short: "Telegram Channel Media Downloader",
	Long: `TeleRipper downloads the media of a Telegram channel into a local folder,
sorted into videos, images, documents, audio, archives and more.

On first run you are asked for your API ID and API hash, which you can get
from https://my.telegram.org/apps. They are stored in ~/.teleripper/config.ini.`,
	Example: `  # List the channels your account has joined
  teleripper --lc

  # Download everything from a channel
  teleripper --d -1001234567890

  # Only the videos among the last 200 messages
  teleripper --d -1001234567890 --limit 200 --type videos --dir ./media

  # Forget the stored API credentials
  teleripper --reset-config`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet {
			ui.SetQuietMode(true)
		}
		if noColor || os.Getenv("NO_COLOR") != "" {
			ui.SetColorEnabled(false)
		}
	},
	RunE: runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "settings file (default is $HOME/.teleripper/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&notifications, "notifications", false, "send a desktop notification when a download completes")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")

	rootCmd.SetVersionTemplate(`TeleRipper {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// flagOverrides collects the persistent flags that were set. --quiet wins
// over --verbose, which wins over --log-level.
func flagOverrides(cmd *cobra.Command, extra map[string]interface{}) map[string]interface{} {
	flags := make(map[string]interface{})
	for k, v := range extra {
		flags[k] = v
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}
	if verbose {
		flags["log-level"] = "debug"
	}
	if quiet {
		flags["log-level"] = "error"
	}
	if noColor {
		flags["no-color"] = true
	}
	if cmd.Flags().Changed("notifications") {
		flags["notifications"] = notifications
	}
	return flags
}

// loadConfig merges the persistent flags that were set with the other sources.
func loadConfig(cmd *cobra.Command, extra map[string]interface{}) (*config.Config, error) {
	cfg, err := config.Load(configFile, flagOverrides(cmd, extra))
	if err != nil {
		return nil, apperrors.Config("load settings", err)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, apperrors.Config("initialize logger", err)
	}
	ui.SetColorEnabled(cfg.UI.Color)
	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// reportError prints the message matching the failure class of err.
func reportError(w io.Writer, err error) {
	for _, line := range describeError(err) {
		fmt.Fprintln(w, ui.Red(line))
	}
	if apperrors.TypeOf(err) == apperrors.ErrorTypeUnexpected && !errors.Is(err, context.Canceled) {
		// go-faster errors from the client carry their call frames
		fmt.Fprintf(w, "%+v\n", err)
	}
}

func describeError(err error) []string {
	var notFound *ripper.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return []string{
			fmt.Sprintf("Error: Could not find channel with ID %s.", notFound.Identifier),
			"Use --lc to list channels with their correct IDs.",
		}
	case errors.Is(err, context.Canceled):
		return []string{"Interrupted."}
	}

	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeConfig:
		var e *apperrors.Error
		if errors.As(err, &e) {
			return []string{fmt.Sprintf("Error: %v", e.Err)}
		}
		return []string{fmt.Sprintf("Error: %v", err)}
	case apperrors.ErrorTypeConnection:
		return []string{"Error: Could not connect to Telegram. Please check your internet connection."}
	case apperrors.ErrorTypeAPI:
		return []string{fmt.Sprintf("A Telegram API error occurred: %v", err)}
	case apperrors.ErrorTypeUnexpected:
		return []string{fmt.Sprintf("An unexpected error occurred: %v", err)}
	default:
		return []string{fmt.Sprintf("Error: %v", err)}
	}
}

// flagAliases maps the long spellings accepted for the action flags.
var flagAliases = map[string]string{
	"listchannels": "lc",
	"download":     "d",
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if alias, ok := flagAliases[name]; ok {
		name = alias
	}
	return pflag.NormalizedName(name)
}
