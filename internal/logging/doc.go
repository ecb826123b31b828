// Package logging builds the slog loggers used across mediasort.
//
// It offers a console handler for interactive runs, JSON output for log
// files, attribute helper aliases, and a no-op logger for tests. Component
// loggers carry a standardized "component" attribute so every line can be
// traced to the subsystem that produced it.
package logging
