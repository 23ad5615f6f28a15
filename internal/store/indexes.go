package store

import (
	"context"

	"qbank/internal/question"
)

// IDsByYear returns the ids of records with the given year, newest first.
// UnknownYear selects only records whose year is Unknown.
func (s *Store) IDsByYear(ctx context.Context, year question.Year) ([]string, error) {
	ctx = ensureContext(ctx)
	ids, err := scanStrings(ctx, s.db,
		"SELECT id FROM questions WHERE year = ? ORDER BY created_at DESC, id", year.String())
	if err != nil {
		return nil, newError(ErrRead, "ids by year", year.String(), err)
	}
	return ids, nil
}

// IDsByKeyword returns the ids of every record whose keyword set contains keyword.
func (s *Store) IDsByKeyword(ctx context.Context, keyword string) ([]string, error) {
	ctx = ensureContext(ctx)
	ids, err := scanStrings(ctx, s.db,
		"SELECT question_id FROM question_keywords WHERE keyword = ? ORDER BY question_id", keyword)
	if err != nil {
		return nil, newError(ErrRead, "ids by keyword", keyword, err)
	}
	return ids, nil
}

// YearCounts returns the number of records per canonical year string.
func (s *Store) YearCounts(ctx context.Context) (map[string]int, error) {
	ctx = ensureContext(ctx)
	counts, err := scanCounts(ctx, s.db, "SELECT year, COUNT(1) FROM questions GROUP BY year")
	if err != nil {
		return nil, newError(ErrRead, "year counts", "", err)
	}
	return counts, nil
}

// KeywordCounts returns the number of records carrying each keyword.
func (s *Store) KeywordCounts(ctx context.Context) (map[string]int, error) {
	ctx = ensureContext(ctx)
	counts, err := scanCounts(ctx, s.db, "SELECT keyword, COUNT(1) FROM question_keywords GROUP BY keyword")
	if err != nil {
		return nil, newError(ErrRead, "keyword counts", "", err)
	}
	return counts, nil
}
