package library

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"qbank/internal/autotag"
	"qbank/internal/logging"
	"qbank/internal/query"
	"qbank/internal/question"
)

// View returns the records passing f, newest first. Year and included
// keyword constraints are first narrowed through the store indexes; the
// full filter is then applied to the cached records.
func (l *Library) View(ctx context.Context, f query.Filter) ([]question.Record, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	if err := l.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	candidates, err := l.candidates(ctx, f)
	if err != nil {
		return nil, err
	}

	l.mu.RLock()
	records := l.snapshot(candidates)
	l.mu.RUnlock()
	return query.Apply(records, f), nil
}

func (l *Library) candidates(ctx context.Context, f query.Filter) ([]string, error) {
	var ids []string
	narrowed := false
	intersect := func(next []string) {
		if !narrowed {
			ids, narrowed = next, true
			return
		}
		ids = slices.DeleteFunc(ids, func(id string) bool { return !slices.Contains(next, id) })
	}

	if year, ok := f.Year.Value(); ok {
		byYear, err := l.store.IDsByYear(ctx, year)
		if err != nil {
			return nil, err
		}
		intersect(byYear)
	}
	for _, keyword := range f.IncludeKeywords {
		byKeyword, err := l.store.IDsByKeyword(ctx, keyword)
		if err != nil {
			return nil, err
		}
		intersect(byKeyword)
	}
	if narrowed {
		return ids, nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Sorted(maps.Keys(l.cache)), nil
}

// AutoTag applies rule to every record carrying a trigger keyword and
// persists the result in one transaction. It returns the updated records.
func (l *Library) AutoTag(ctx context.Context, rule autotag.Rule) ([]question.Record, error) {
	rule = rule.Normalize()
	if rule.IsNoop() {
		return nil, nil
	}
	if err := l.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	var ids []string
	for _, trigger := range rule.Triggers {
		byKeyword, err := l.store.IDsByKeyword(ctx, trigger)
		if err != nil {
			return nil, err
		}
		for _, id := range byKeyword {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	l.mu.RLock()
	candidates := l.snapshot(ids)
	l.mu.RUnlock()

	updated, err := autotag.Apply(ctx, autotag.BulkWriterFunc(l.SaveMany), candidates, rule)
	if err != nil {
		return nil, err
	}
	logging.WithContext(ctx, l.logger).Info("auto-tag rule applied",
		logging.String(logging.FieldEventType, "autotag_applied"),
		logging.String("topic", rule.Topic),
		logging.Strings("triggers", rule.Triggers),
		logging.Int("candidates", len(candidates)),
		logging.Int(logging.FieldCount, len(updated)))
	return updated, nil
}

// Vocabulary returns the keyword and topic values in use with their counts.
func (l *Library) Vocabulary(ctx context.Context) (keywords, topics []query.TagCount, err error) {
	records, err := l.Records(ctx)
	if err != nil {
		return nil, nil, err
	}
	return query.Keywords(records), query.Topics(records), nil
}

// Stats summarises the library from the store indexes.
type Stats struct {
	Total      int              `json:"total"`
	ByYear     []query.TagCount `json:"by_year"`
	ByKeyword  []query.TagCount `json:"by_keyword"`
	ByTopic    []query.TagCount `json:"by_topic"`
	ByPaper    []query.TagCount `json:"by_paper"`
	Difficulty []query.TagCount `json:"by_difficulty"`
}

// Stats reads per-year and per-keyword counts from the store indexes and
// derives the remaining breakdowns from the cached records.
func (l *Library) Stats(ctx context.Context) (Stats, error) {
	total, err := l.store.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	years, err := l.store.YearCounts(ctx)
	if err != nil {
		return Stats{}, err
	}
	keywords, err := l.store.KeywordCounts(ctx)
	if err != nil {
		return Stats{}, err
	}
	records, err := l.Records(ctx)
	if err != nil {
		return Stats{}, err
	}

	papers := map[string]int{}
	difficulties := map[string]int{}
	for _, rec := range records {
		papers[string(rec.PaperType)]++
		difficulties[string(rec.Difficulty)]++
	}
	return Stats{
		Total:      total,
		ByYear:     sortedCounts(years),
		ByKeyword:  sortedCounts(keywords),
		ByTopic:    query.Topics(records),
		ByPaper:    sortedCounts(papers),
		Difficulty: sortedCounts(difficulties),
	}, nil
}

func sortedCounts(counts map[string]int) []query.TagCount {
	out := make([]query.TagCount, 0, len(counts))
	for _, key := range slices.Sorted(maps.Keys(counts)) {
		out = append(out, query.TagCount{Tag: key, Count: counts[key]})
	}
	return out
}
