// Package logger provides structured logging for teleripper.
//
// It wraps zerolog behind a small Logger interface. Console output goes to
// stderr so that listings and summaries printed on stdout stay clean; when a
// log file is configured, JSON lines are appended to it instead.
//
// Usage:
//
//	if err := logger.Initialize(&cfg.Logging); err != nil {
//	    return err
//	}
//	logger.WithField("channel", title).Info("Starting download")
//
// Tests can capture output with NewTestLogger or silence it with NewNopLogger.
package logger
