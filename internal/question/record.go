package question

import (
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Part is one labelled sub-question of a Paper 2 record.
type Part struct {
	Label         string `json:"label"`
	QuestionImage string `json:"question_image"`
	AnswerImage   string `json:"answer_image"`
}

// Record is the unit of storage.
//
// Paper 1 records populate QuestionImage, AnswerKind and exactly one of
// AnswerChoice or AnswerImage. Paper 2 records populate Parts only.
// Keywords and Topics keep insertion order but hold no duplicates.
type Record struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	PaperType PaperType `json:"paper_type"`

	QuestionImage string     `json:"question_image,omitempty"`
	AnswerKind    AnswerKind `json:"answer_kind,omitempty"`
	AnswerChoice  string     `json:"answer_choice,omitempty"`
	AnswerImage   string     `json:"answer_image,omitempty"`

	Parts []Part `json:"parts,omitempty"`

	Keywords       []string   `json:"keywords"`
	Topics         []string   `json:"topics"`
	Difficulty     Difficulty `json:"difficulty"`
	Year           Year       `json:"year"`
	Month          Month      `json:"month"`
	QuestionNumber string     `json:"question_number"`
}

// New returns an empty record of the given paper type with a fresh
// identifier, the current UTC time, and the form defaults (Medium
// difficulty, unknown year and month).
func New(paperType PaperType) Record {
	return Record{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		PaperType:  paperType,
		Keywords:   []string{},
		Topics:     []string{},
		Difficulty: Medium,
		Year:       UnknownYear,
		Month:      UnknownMonth,
	}
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.Keywords = cloneStrings(r.Keywords)
	out.Topics = cloneStrings(r.Topics)
	if r.Parts != nil {
		out.Parts = append([]Part(nil), r.Parts...)
	}
	return out
}

// HasKeyword reports whether keyword is in the record's keyword set.
func (r Record) HasKeyword(keyword string) bool {
	return slices.Contains(r.Keywords, keyword)
}

// HasTopic reports whether topic is in the record's topic set.
func (r Record) HasTopic(topic string) bool {
	return slices.Contains(r.Topics, topic)
}

// NextPartLabel returns the label for a part appended to parts: a, b, c...
// Labels past z fall back to the part's ordinal.
func NextPartLabel(parts []Part) string {
	n := len(parts)
	if n < 26 {
		return string(rune('a' + n))
	}
	return strconv.Itoa(n + 1)
}

// SortNewestFirst orders records by creation time, newest first. Records
// created at the same instant keep their relative order.
func SortNewestFirst(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

func cloneStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append(make([]string, 0, len(values)), values...)
}
