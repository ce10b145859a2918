// Package log provides logging for pipeline runs, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Automatic truncation of oversized attribute values (captured tool output)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// External tool output attached to log records can be arbitrarily large;
// the TruncateHandler cuts such values before they reach the underlying
// handler so log lines stay readable.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("tool completed",
//	    "tool", "amass",
//	    "output", text, // truncated if oversized
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
