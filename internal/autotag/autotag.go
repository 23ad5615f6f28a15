// Package autotag applies "records with any of these keywords get this topic"
// rules in one batch.
package autotag

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"qbank/internal/question"
)

// Rule names a target topic and the keywords that trigger it.
type Rule struct {
	Topic    string
	Triggers []string
}

// Normalize trims the topic and triggers, dropping empty and repeated
// triggers.
func (r Rule) Normalize() Rule {
	out := Rule{Topic: strings.TrimSpace(r.Topic)}
	for _, trigger := range r.Triggers {
		trigger = strings.TrimSpace(trigger)
		if trigger == "" || slices.Contains(out.Triggers, trigger) {
			continue
		}
		out.Triggers = append(out.Triggers, trigger)
	}
	return out
}

// IsNoop reports whether the rule can never match anything.
func (r Rule) IsNoop() bool {
	n := r.Normalize()
	return n.Topic == "" || len(n.Triggers) == 0
}

// Qualifies reports whether rec carries a trigger keyword and lacks the topic.
func (r Rule) Qualifies(rec question.Record) bool {
	n := r.Normalize()
	if n.Topic == "" || rec.HasTopic(n.Topic) {
		return false
	}
	for _, trigger := range n.Triggers {
		if rec.HasKeyword(trigger) {
			return true
		}
	}
	return false
}

// Plan returns updated copies of every qualifying record with the topic
// appended. Input records are not modified.
func Plan(records []question.Record, rule Rule) []question.Record {
	rule = rule.Normalize()
	if rule.Topic == "" || len(rule.Triggers) == 0 {
		return nil
	}
	var updated []question.Record
	for _, rec := range records {
		if !rule.Qualifies(rec) {
			continue
		}
		next := rec.Clone()
		next.Topics = append(next.Topics, rule.Topic)
		updated = append(updated, next)
	}
	return updated
}

// BulkWriter persists many records atomically.
type BulkWriter interface {
	BulkPut(ctx context.Context, records []question.Record) error
}

// BulkWriterFunc adapts a function to BulkWriter.
type BulkWriterFunc func(ctx context.Context, records []question.Record) error

func (f BulkWriterFunc) BulkPut(ctx context.Context, records []question.Record) error {
	return f(ctx, records)
}

// Apply plans rule over records and writes the result in one batch. Nothing
// is written when no record qualifies.
func Apply(ctx context.Context, w BulkWriter, records []question.Record, rule Rule) ([]question.Record, error) {
	updated := Plan(records, rule)
	if len(updated) == 0 {
		return nil, nil
	}
	if err := w.BulkPut(ctx, updated); err != nil {
		return nil, fmt.Errorf("auto-tag %q: %w", rule.Normalize().Topic, err)
	}
	return updated, nil
}
