// Package library is the in-process caller of the record store.
//
// It owns the single-writer file lock, keeps a read-through cache of records
// keyed by ID that is updated after each successful write, computes filtered
// views ordered newest first, and runs auto-tag rules. The store itself
// neither caches nor locks.
package library
