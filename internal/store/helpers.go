package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"qbank/internal/question"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowsQueryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func encodeRecord(rec question.Record) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return string(data), nil
}

func decodeRecord(body string) (question.Record, error) {
	var rec question.Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return question.Record{}, fmt.Errorf("decode record: %w", err)
	}
	if rec.Keywords == nil {
		rec.Keywords = []string{}
	}
	if rec.Topics == nil {
		rec.Topics = []string{}
	}
	return rec, nil
}

func scanRecords(ctx context.Context, q rowsQueryer, query string, args ...any) ([]question.Record, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []question.Record{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := decodeRecord(body)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func scanStrings(ctx context.Context, q rowsQueryer, query string, args ...any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

func scanCounts(ctx context.Context, q rowsQueryer, query string) (map[string]int, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

// writeRecord replaces the row for rec and its keyword index rows.
func writeRecord(ctx context.Context, tx execer, rec question.Record) error {
	body, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO questions (id, created_at, paper_type, year, body)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
            created_at = excluded.created_at,
            paper_type = excluded.paper_type,
            year = excluded.year,
            body = excluded.body`,
		rec.ID,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(rec.PaperType),
		rec.Year.String(),
		body,
	); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return writeKeywords(ctx, tx, rec)
}

func writeKeywords(ctx context.Context, tx execer, rec question.Record) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM question_keywords WHERE question_id = ?", rec.ID); err != nil {
		return fmt.Errorf("clear keyword index for %q: %w", rec.ID, err)
	}
	for position, keyword := range rec.Keywords {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO question_keywords (question_id, keyword, position) VALUES (?, ?, ?)",
			rec.ID, keyword, position,
		); err != nil {
			return fmt.Errorf("index keyword %q for %q: %w", keyword, rec.ID, err)
		}
	}
	return nil
}
