// Package logs reads back the JSON log file written by qbank commands.
//
// Tail returns the last matching entries with bounded memory; Follow polls
// the file from an offset and hands new entries to a callback until the
// context ends. Lines that are not JSON log entries are skipped.
package logs
