// Package logging assembles the slog loggers used by qbank.
//
// Console output goes to stderr in a compact key=value form (or JSON), and
// a JSON copy is appended to the log file under the state directory. Context
// helpers tag lines with the record being touched and the invocation's
// correlation ID.
package logging
