package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"qbank/internal/question"
)

// GetAll returns every stored record. Order is unspecified; callers sort.
func (s *Store) GetAll(ctx context.Context) ([]question.Record, error) {
	ctx = ensureContext(ctx)
	records, err := scanRecords(ctx, s.db, "SELECT body FROM questions")
	if err != nil {
		return nil, newError(ErrRead, "get all", "", err)
	}
	return records, nil
}

// Get returns the record with id, or nil when no such record exists.
func (s *Store) Get(ctx context.Context, id string) (*question.Record, error) {
	ctx = ensureContext(ctx)
	var body string
	err := s.db.QueryRowContext(ctx, "SELECT body FROM questions WHERE id = ?", id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, newError(ErrRead, "get", id, err)
	}
	rec, err := decodeRecord(body)
	if err != nil {
		return nil, newError(ErrRead, "get", id, err)
	}
	return &rec, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM questions").Scan(&count); err != nil {
		return 0, newError(ErrRead, "count", "", err)
	}
	return count, nil
}

// Put upserts rec, replacing any stored record with the same id in full.
func (s *Store) Put(ctx context.Context, rec question.Record) error {
	ctx = ensureContext(ctx)
	if err := rec.Validate(); err != nil {
		return newError(ErrWrite, "put", rec.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return newError(ErrWrite, "put", rec.ID, fmt.Errorf("begin tx: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	if err := writeRecord(ctx, tx, rec); err != nil {
		return newError(ErrWrite, "put", rec.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return newError(ErrWrite, "put", rec.ID, fmt.Errorf("commit: %w", err))
	}
	return nil
}

// BulkPut upserts records in a single transaction. If any record is invalid
// or any write fails, the transaction is rolled back and the store is left
// exactly as it was before the call.
func (s *Store) BulkPut(ctx context.Context, records []question.Record) error {
	ctx = ensureContext(ctx)
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return newError(ErrTransaction, "bulk put", "", fmt.Errorf("begin tx: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return newError(ErrTransaction, "bulk put", rec.ID,
				fmt.Errorf("record %d of %d: %w", i+1, len(records), err))
		}
		if err := writeRecord(ctx, tx, rec); err != nil {
			return newError(ErrTransaction, "bulk put", rec.ID,
				fmt.Errorf("record %d of %d: %w", i+1, len(records), err))
		}
	}

	if err := tx.Commit(); err != nil {
		return newError(ErrTransaction, "bulk put", "", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// Delete removes the record with id. Deleting a missing id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return newError(ErrWrite, "delete", id, fmt.Errorf("begin tx: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM question_keywords WHERE question_id = ?", id); err != nil {
		return newError(ErrWrite, "delete", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", id); err != nil {
		return newError(ErrWrite, "delete", id, err)
	}
	if err := tx.Commit(); err != nil {
		return newError(ErrWrite, "delete", id, fmt.Errorf("commit: %w", err))
	}
	return nil
}

// Clear removes every record and returns how many were removed.
// The caller is responsible for confirming intent.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, newError(ErrWrite, "clear", "", fmt.Errorf("begin tx: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM question_keywords"); err != nil {
		return 0, newError(ErrWrite, "clear", "", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM questions")
	if err != nil {
		return 0, newError(ErrWrite, "clear", "", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, newError(ErrWrite, "clear", "", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, newError(ErrWrite, "clear", "", fmt.Errorf("commit: %w", err))
	}
	return removed, nil
}
