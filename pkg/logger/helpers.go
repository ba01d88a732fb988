package logger

import (
	"github.com/rs/zerolog"
)

// LogDownload records the outcome of a single attachment transfer on l
func LogDownload(l Logger, channel string, messageID int, category, file string, err error) {
	l = l.WithFields(map[string]interface{}{
		"channel":    channel,
		"message_id": messageID,
		"category":   category,
		"file":       file,
	})

	if err != nil {
		l.WithError(err).Error("Download failed")
		return
	}
	l.Info("Download completed")
}

// LogFloodWait records a server side slowdown request
func LogFloodWait(method string, waitSeconds int) {
	GetLogger().WithFields(map[string]interface{}{
		"method":      method,
		"retry_after": waitSeconds,
		"action":      "flood_wait",
	}).Warn("Telegram asked to slow down")
}

// LogComponentStart logs when a component starts
func LogComponentStart(component string, config map[string]interface{}) {
	l := GetLogger().WithField("component", component)
	if len(config) > 0 {
		l = l.WithFields(config)
	}
	l.Debug("Component started")
}

// NewNopLogger creates a no-operation logger for testing
func NewNopLogger() Logger {
	return &nopLogger{}
}

// nopLogger is a logger that does nothing (useful for testing)
type nopLogger struct{}

func (n *nopLogger) Debug(msg string)                                          {}
func (n *nopLogger) Info(msg string)                                           {}
func (n *nopLogger) Warn(msg string)                                           {}
func (n *nopLogger) Error(msg string)                                          {}
func (n *nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n *nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n *nopLogger) WithError(err error) Logger                                { return n }
func (n *nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) GetZerolog() *zerolog.Logger                               { return nil }
