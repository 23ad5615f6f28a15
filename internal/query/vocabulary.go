package query

import (
	"cmp"
	"slices"

	"qbank/internal/question"
)

// TagCount is a tag value and the number of records carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Keywords returns every keyword used by records, sorted by name.
func Keywords(records []question.Record) []TagCount {
	return countTags(records, func(r question.Record) []string { return r.Keywords })
}

// Topics returns every topic used by records, sorted by name.
func Topics(records []question.Record) []TagCount {
	return countTags(records, func(r question.Record) []string { return r.Topics })
}

// TagNames extracts the tag values from counts.
func TagNames(counts []TagCount) []string {
	names := make([]string, len(counts))
	for i, c := range counts {
		names[i] = c.Tag
	}
	return names
}

// Years returns the distinct years used by records, newest first, with
// Unknown last.
func Years(records []question.Record) []question.Year {
	seen := make(map[question.Year]struct{})
	var years []question.Year
	for _, rec := range records {
		if _, ok := seen[rec.Year]; ok {
			continue
		}
		seen[rec.Year] = struct{}{}
		years = append(years, rec.Year)
	}
	slices.SortFunc(years, func(a, b question.Year) int {
		av, aKnown := a.Int()
		bv, bKnown := b.Int()
		switch {
		case aKnown && bKnown:
			return cmp.Compare(bv, av)
		case aKnown:
			return -1
		case bKnown:
			return 1
		}
		return 0
	})
	return years
}

func countTags(records []question.Record, tags func(question.Record) []string) []TagCount {
	counts := make(map[string]int)
	for _, rec := range records {
		for _, tag := range tags(rec) {
			counts[tag]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		out = append(out, TagCount{Tag: tag, Count: count})
	}
	slices.SortFunc(out, func(a, b TagCount) int {
		return cmp.Compare(a.Tag, b.Tag)
	})
	return out
}
