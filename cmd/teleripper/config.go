package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"teleripper/pkg/auth"
	"teleripper/pkg/config"
	apperrors "teleripper/pkg/errors"
	"teleripper/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create settings",
	Long: `Inspect and create TeleRipper settings.

Settings are merged from, highest priority first:
  - Command line flags
  - Environment variables (TELERIPPER_*)
  - .env files in the current directory and ~/.teleripper
  - The settings file (~/.teleripper/settings.yaml or --config)
  - Default values

API credentials are kept apart in ~/.teleripper/config.ini.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the settings and credentials files",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func settingsPath() string {
	if configFile != "" {
		return configFile
	}
	return config.DefaultPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := settingsPath()
	if path == "" {
		return apperrors.Config("locate settings", errors.New("home directory is unknown; pass --config"))
	}

	if _, err := os.Stat(path); err == nil {
		ui.PrintError("Settings file already exists", path)
		return nil
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return apperrors.Config("write settings", err)
	}
	ui.PrintSuccess("Settings file created: " + path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return apperrors.Config("format settings", err)
	}

	out := ui.Output()
	ui.PrintHighlight("Current settings")
	fmt.Fprint(out, string(data))

	creds, ok, err := auth.FromEnv()
	source := "environment"
	if !ok {
		source = "config.ini"
		store, storeErr := auth.DefaultINIStore()
		if storeErr != nil {
			return apperrors.Config("locate credentials", storeErr)
		}
		creds, err = store.Load()
	}

	fmt.Fprintln(out)
	ui.PrintHighlight("API credentials")
	switch {
	case errors.Is(err, auth.ErrNotFound):
		fmt.Fprintln(out, "not configured")
	case err != nil:
		ui.PrintWarning("Cannot read credentials", err)
	default:
		masked := creds.Masked()
		ui.PrintInfo("Source", source)
		ui.PrintInfo("API ID", fmt.Sprint(masked.APIID))
		ui.PrintInfo("API hash", masked.APIHash)
		ui.PrintInfo("Session", masked.SessionName)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	store, err := auth.DefaultINIStore()
	if err != nil {
		return apperrors.Config("locate credentials", err)
	}
	ui.PrintInfo("Settings", settingsPath())
	ui.PrintInfo("Credentials", store.Path())
	return nil
}
