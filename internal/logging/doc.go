// Package logging provides a simple leveled logging interface for imgserve.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions (including rejected path traversal attempts)
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The initial level comes from the LOG_LEVEL (or DEBUG) environment variable.
// The server's --verbose flag calls SetLevel(LevelDebug) after startup
// configuration has been parsed.
package logging
