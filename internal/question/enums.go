package question

import (
	"fmt"
	"strings"
)

// PaperType discriminates the two record payload variants.
type PaperType string

const (
	// PaperOne records carry a single question image and one answer.
	PaperOne PaperType = "Paper 1"
	// PaperTwo records carry an ordered list of labelled parts.
	PaperTwo PaperType = "Paper 2"
)

// AnswerKind selects how a Paper 1 answer is recorded.
type AnswerKind string

const (
	AnswerSelection AnswerKind = "selection"
	AnswerImage     AnswerKind = "image"
)

// Difficulty grades a question.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Month is the exam session a question came from.
type Month string

const (
	May          Month = "May"
	November     Month = "November"
	UnknownMonth Month = "Unknown"
)

// AnswerChoices lists the valid multiple-choice tokens.
var AnswerChoices = []string{"A", "B", "C", "D"}

var (
	allPaperTypes   = []PaperType{PaperOne, PaperTwo}
	allDifficulties = []Difficulty{Easy, Medium, Hard}
	allMonths       = []Month{May, November, UnknownMonth}
)

// PaperTypes returns every paper type in display order.
func PaperTypes() []PaperType {
	return append([]PaperType(nil), allPaperTypes...)
}

// Difficulties returns every difficulty in display order.
func Difficulties() []Difficulty {
	return append([]Difficulty(nil), allDifficulties...)
}

// Months returns every month in display order.
func Months() []Month {
	return append([]Month(nil), allMonths...)
}

// Valid reports whether p is a known paper type.
func (p PaperType) Valid() bool {
	return p == PaperOne || p == PaperTwo
}

// Valid reports whether k is a known answer kind.
func (k AnswerKind) Valid() bool {
	return k == AnswerSelection || k == AnswerImage
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	for _, candidate := range allDifficulties {
		if d == candidate {
			return true
		}
	}
	return false
}

// Valid reports whether m is a known month.
func (m Month) Valid() bool {
	for _, candidate := range allMonths {
		if m == candidate {
			return true
		}
	}
	return false
}

// ParsePaperType accepts the canonical names plus the short forms "1", "p1",
// "paper1" (and the Paper 2 equivalents).
func ParsePaperType(raw string) (PaperType, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	switch key {
	case "1", "p1", "paper1":
		return PaperOne, nil
	case "2", "p2", "paper2":
		return PaperTwo, nil
	}
	return "", fmt.Errorf("paper type %q: expected %q or %q", raw, PaperOne, PaperTwo)
}

// ParseAnswerKind accepts "selection" or "image".
func ParseAnswerKind(raw string) (AnswerKind, error) {
	kind := AnswerKind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return "", fmt.Errorf("answer kind %q: expected %q or %q", raw, AnswerSelection, AnswerImage)
	}
	return kind, nil
}

// ParseDifficulty matches a difficulty name case-insensitively.
func ParseDifficulty(raw string) (Difficulty, error) {
	trimmed := strings.TrimSpace(raw)
	for _, candidate := range allDifficulties {
		if strings.EqualFold(trimmed, string(candidate)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("difficulty %q: expected Easy, Medium or Hard", raw)
}

// ParseMonth matches a month name case-insensitively. "Nov" is accepted as
// shorthand for November.
func ParseMonth(raw string) (Month, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, "nov") {
		return November, nil
	}
	for _, candidate := range allMonths {
		if strings.EqualFold(trimmed, string(candidate)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("month %q: expected May, November or Unknown", raw)
}

// ParseAnswerChoice normalizes a multiple-choice token to upper case.
func ParseAnswerChoice(raw string) (string, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	for _, candidate := range AnswerChoices {
		if token == candidate {
			return token, nil
		}
	}
	return "", fmt.Errorf("answer choice %q: expected one of %s", raw, strings.Join(AnswerChoices, ", "))
}
