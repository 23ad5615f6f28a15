// Package store persists question records in SQLite and maintains the two
// secondary indexes the library relies on: exam year, and keyword
// membership (one index row per keyword a record carries).
//
// The Store owns the on-disk keyspace. Every write validates the record,
// replaces the row in full, and rewrites its index rows inside the same
// transaction, so the indexes never drift from the record bodies. BulkPut
// applies a whole batch in one transaction: either every record commits or
// none does.
//
// The database is versioned through the schema_version table. Opening a
// database written by a newer release fails with ErrSchemaTooNew and leaves
// the file untouched; opening an older one rebuilds the indexes from the
// stored records and bumps the version. When the schema changes, bump
// schemaVersion in schema.go and describe the upgrade in upgradeSchema.
//
// Failures surface as *Error values classified by the ErrInitialization,
// ErrRead, ErrWrite, and ErrTransaction markers. The store never retries;
// retry policy belongs to the caller.
package store
