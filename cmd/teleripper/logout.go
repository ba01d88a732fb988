package main

import (
	"github.com/spf13/cobra"

	"teleripper/pkg/auth"
	"teleripper/pkg/config"
	apperrors "teleripper/pkg/errors"
	"teleripper/pkg/logger"
	"teleripper/pkg/session"
	"teleripper/pkg/ui"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored Telegram session",
	Long: `Remove the saved Telegram login from the system keychain and the
encrypted session file. The next run asks for your phone number and a login
code again. API credentials are kept; use --reset-config to remove them.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd, nil); err != nil {
		return err
	}

	name := auth.DefaultSessionName
	if creds, ok, err := auth.FromEnv(); ok && err == nil {
		name = creds.SessionName
	} else if store, err := auth.DefaultINIStore(); err == nil {
		if creds, err := store.Load(); err == nil {
			name = creds.SessionName
		}
	}

	dir, err := config.AppDir()
	if err != nil {
		return apperrors.Config("locate app directory", err)
	}

	for _, backend := range []string{config.SessionBackendKeyring, config.SessionBackendFile} {
		storage, err := session.New(session.Options{
			Backend: backend,
			Name:    name,
			Dir:     dir,
			// the file is removed, never decrypted
			Passphrase: "logout",
		})
		if err != nil {
			logger.WithError(err).WithField("backend", backend).Debug("Session backend unavailable")
			continue
		}
		if err := storage.Delete(); err != nil {
			return apperrors.Config("delete session", err)
		}
	}

	ui.PrintSuccess("Logged out of session " + name)
	return nil
}
