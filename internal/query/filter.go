package query

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"qbank/internal/question"
)

// Filter is the complete set of constraints narrowing the visible records.
// The zero value matches every record.
type Filter struct {
	Text string

	IncludeKeywords []string
	ExcludeKeywords []string
	IncludeTopics   []string
	ExcludeTopics   []string

	PaperType  PaperChoice
	Year       YearChoice
	Difficulty DifficultyChoice
}

// Validate rejects filters that list the same tag as both included and
// excluded. Such filters can only come from a construction bug.
func (f Filter) Validate() error {
	if tag, ok := overlap(f.IncludeKeywords, f.ExcludeKeywords); ok {
		return fmt.Errorf("keyword %q is both included and excluded", tag)
	}
	if tag, ok := overlap(f.IncludeTopics, f.ExcludeTopics); ok {
		return fmt.Errorf("topic %q is both included and excluded", tag)
	}
	return nil
}

// IsEmpty reports whether f constrains nothing.
func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Text) == "" &&
		len(f.IncludeKeywords) == 0 && len(f.ExcludeKeywords) == 0 &&
		len(f.IncludeTopics) == 0 && len(f.ExcludeTopics) == 0 &&
		f.PaperType.IsAll() && f.Year.IsAll() && f.Difficulty.IsAll()
}

// Apply returns the records that pass f, in input order.
func Apply(records []question.Record, f Filter) []question.Record {
	m := newMatcher(f)
	out := make([]question.Record, 0, len(records))
	for _, rec := range records {
		if m.matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether a single record passes f.
func Matches(rec question.Record, f Filter) bool {
	return newMatcher(f).matches(rec)
}

type matcher struct {
	filter Filter
	folder cases.Caser
	needle string
}

func newMatcher(f Filter) *matcher {
	m := &matcher{filter: f, folder: cases.Fold()}
	if text := strings.TrimSpace(f.Text); text != "" {
		m.needle = m.folder.String(text)
	}
	return m
}

func (m *matcher) matches(rec question.Record) bool {
	f := m.filter
	return m.matchesText(rec) &&
		f.PaperType.Matches(rec.PaperType) &&
		f.Year.Matches(rec.Year) &&
		f.Difficulty.Matches(rec.Difficulty) &&
		containsAll(rec.Keywords, f.IncludeKeywords) &&
		containsNone(rec.Keywords, f.ExcludeKeywords) &&
		containsAll(rec.Topics, f.IncludeTopics) &&
		containsNone(rec.Topics, f.ExcludeTopics)
}

func (m *matcher) matchesText(rec question.Record) bool {
	if m.needle == "" {
		return true
	}
	if m.contains(rec.QuestionNumber) {
		return true
	}
	for _, keyword := range rec.Keywords {
		if m.contains(keyword) {
			return true
		}
	}
	for _, topic := range rec.Topics {
		if m.contains(topic) {
			return true
		}
	}
	return false
}

func (m *matcher) contains(value string) bool {
	return value != "" && strings.Contains(m.folder.String(value), m.needle)
}

func containsAll(set, required []string) bool {
	for _, tag := range required {
		if !slices.Contains(set, tag) {
			return false
		}
	}
	return true
}

func containsNone(set, forbidden []string) bool {
	for _, tag := range forbidden {
		if slices.Contains(set, tag) {
			return false
		}
	}
	return true
}

func overlap(a, b []string) (string, bool) {
	for _, tag := range a {
		if slices.Contains(b, tag) {
			return tag, true
		}
	}
	return "", false
}
