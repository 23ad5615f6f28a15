package question

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidRecord marks records that break the data model invariants.
var ErrInvalidRecord = errors.New("invalid record")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, fmt.Sprintf(format, args...))
}

// Validate checks the invariants every stored record must satisfy.
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return invalid("id is required")
	}
	switch r.PaperType {
	case PaperOne:
		if err := r.validatePaperOne(); err != nil {
			return err
		}
	case PaperTwo:
		if err := r.validatePaperTwo(); err != nil {
			return err
		}
	default:
		return invalid("unknown paper type %q", r.PaperType)
	}
	if err := validateTagSet("keyword", r.Keywords); err != nil {
		return err
	}
	if err := validateTagSet("topic", r.Topics); err != nil {
		return err
	}
	if !r.Difficulty.Valid() {
		return invalid("unknown difficulty %q", r.Difficulty)
	}
	if !r.Month.Valid() {
		return invalid("unknown month %q", r.Month)
	}
	if v, known := r.Year.Int(); known && v <= 0 {
		return invalid("year %d must be positive", v)
	}
	return nil
}

func (r Record) validatePaperOne() error {
	if len(r.Parts) > 0 {
		return invalid("%s record cannot have parts", PaperOne)
	}
	if r.QuestionImage == "" {
		return invalid("%s record needs a question image", PaperOne)
	}
	switch r.AnswerKind {
	case AnswerSelection:
		if !slices.Contains(AnswerChoices, r.AnswerChoice) {
			return invalid("answer choice %q is not one of %s", r.AnswerChoice, strings.Join(AnswerChoices, ", "))
		}
		if r.AnswerImage != "" {
			return invalid("selection answer cannot carry an answer image")
		}
	case AnswerImage:
		if r.AnswerImage == "" {
			return invalid("image answer needs an answer image")
		}
		if r.AnswerChoice != "" {
			return invalid("image answer cannot carry an answer choice")
		}
	default:
		return invalid("unknown answer kind %q", r.AnswerKind)
	}
	return nil
}

func (r Record) validatePaperTwo() error {
	if r.QuestionImage != "" || r.AnswerKind != "" || r.AnswerChoice != "" || r.AnswerImage != "" {
		return invalid("%s record cannot carry %s answer fields", PaperTwo, PaperOne)
	}
	if len(r.Parts) == 0 {
		return invalid("%s record needs at least one part", PaperTwo)
	}
	// Labels may repeat; only the images are required.
	for i, part := range r.Parts {
		if part.QuestionImage == "" || part.AnswerImage == "" {
			return invalid("part %d (%q) needs question and answer images", i+1, part.Label)
		}
	}
	return nil
}

func validateTagSet(kind string, tags []string) error {
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return invalid("empty %s", kind)
		}
		if _, dup := seen[tag]; dup {
			return invalid("duplicate %s %q", kind, tag)
		}
		seen[tag] = struct{}{}
	}
	return nil
}
