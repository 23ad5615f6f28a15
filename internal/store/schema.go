package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

//go:embed indexes.sql
var indexSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
// Older databases are upgraded in place by rebuilding the indexes.
const schemaVersion = 1

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func tableExists(ctx context.Context, q queryer, name string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name=?", name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check %s table: %w", name, err)
	}
	return count > 0, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	versioned, err := tableExists(ctx, s.db, "schema_version")
	if err != nil {
		return err
	}

	if !versioned {
		// A questions table without a version row predates versioning.
		legacy, err := tableExists(ctx, s.db, "questions")
		if err != nil {
			return err
		}
		if legacy {
			return s.upgradeSchema(ctx, 0)
		}
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return s.upgradeSchema(ctx, 0)
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	switch {
	case version > schemaVersion:
		return fmt.Errorf("%w: database has version %d, this release understands %d",
			ErrSchemaTooNew, version, schemaVersion)
	case version < schemaVersion:
		return s.upgradeSchema(ctx, version)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, indexSQL); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// upgradeSchema brings a database at version from up to schemaVersion.
// Record rows are kept; the indexes are dropped and rebuilt from them.
func (s *Store) upgradeSchema(ctx context.Context, from int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upgrade tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if err := rebuildIndexes(ctx, tx); err != nil {
		return fmt.Errorf("upgrade from version %d: %w", from, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("reset schema version: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upgrade: %w", err)
	}
	return nil
}

// rebuildIndexes recreates both secondary indexes from the stored bodies.
func rebuildIndexes(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range []string{
		"DROP INDEX IF EXISTS idx_question_keywords_keyword",
		"DROP TABLE IF EXISTS question_keywords",
		"DROP INDEX IF EXISTS idx_questions_year",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("drop index: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, indexSQL); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}

	records, err := scanRecords(ctx, tx, "SELECT body FROM questions")
	if err != nil {
		return err
	}
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx,
			"UPDATE questions SET year = ?, paper_type = ? WHERE id = ?",
			rec.Year.String(), string(rec.PaperType), rec.ID,
		); err != nil {
			return fmt.Errorf("reindex year for %q: %w", rec.ID, err)
		}
		if err := writeKeywords(ctx, tx, rec); err != nil {
			return err
		}
	}
	return nil
}
