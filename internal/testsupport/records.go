package testsupport

import (
	"time"

	"qbank/internal/question"
)

// RecordOption mutates a fixture record.
type RecordOption func(*question.Record)

var fixtureEpoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

// PaperOne builds a valid Paper 1 record answered by choice "A".
func PaperOne(id string, opts ...RecordOption) question.Record {
	rec := question.Record{
		ID:            id,
		CreatedAt:     fixtureEpoch,
		PaperType:     question.PaperOne,
		QuestionImage: "images/" + id + "-q.png",
		AnswerKind:    question.AnswerSelection,
		AnswerChoice:  "A",
		Keywords:      []string{},
		Topics:        []string{},
		Difficulty:    question.Medium,
		Year:          question.UnknownYear,
		Month:         question.UnknownMonth,
	}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

// PaperTwo builds a valid Paper 2 record with parts a and b.
func PaperTwo(id string, opts ...RecordOption) question.Record {
	rec := question.Record{
		ID:        id,
		CreatedAt: fixtureEpoch,
		PaperType: question.PaperTwo,
		Parts: []question.Part{
			{Label: "a", QuestionImage: "images/" + id + "-qa.png", AnswerImage: "images/" + id + "-aa.png"},
			{Label: "b", QuestionImage: "images/" + id + "-qb.png", AnswerImage: "images/" + id + "-ab.png"},
		},
		Keywords:   []string{},
		Topics:     []string{},
		Difficulty: question.Medium,
		Year:       question.UnknownYear,
		Month:      question.UnknownMonth,
	}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

// WithKeywords sets the keyword set.
func WithKeywords(keywords ...string) RecordOption {
	return func(r *question.Record) { r.Keywords = append([]string{}, keywords...) }
}

// WithTopics sets the topic set.
func WithTopics(topics ...string) RecordOption {
	return func(r *question.Record) { r.Topics = append([]string{}, topics...) }
}

// WithYear sets a known year.
func WithYear(year int) RecordOption {
	return func(r *question.Record) { r.Year = question.YearOf(year) }
}

// WithDifficulty sets the difficulty.
func WithDifficulty(d question.Difficulty) RecordOption {
	return func(r *question.Record) { r.Difficulty = d }
}

// WithQuestionNumber sets the question number label.
func WithQuestionNumber(label string) RecordOption {
	return func(r *question.Record) { r.QuestionNumber = label }
}

// CreatedAfter offsets the creation time from the fixture epoch.
func CreatedAfter(d time.Duration) RecordOption {
	return func(r *question.Record) { r.CreatedAt = fixtureEpoch.Add(d) }
}
