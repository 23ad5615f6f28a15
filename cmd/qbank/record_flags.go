package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"qbank/internal/images"
	"qbank/internal/question"
)

// metadataFlags are the common metadata options of add and edit.
type metadataFlags struct {
	difficulty string
	year       string
	month      string
	number     string
}

func (m *metadataFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&m.difficulty, "difficulty", "", "Easy, Medium, or Hard")
	flags.StringVar(&m.year, "year", "", "Exam year or Unknown")
	flags.StringVar(&m.month, "month", "", "May, November, or Unknown")
	flags.StringVar(&m.number, "number", "", "Question number label, e.g. 12 or 3(b)")
}

// applyTo sets each metadata field whose flag was given.
func (m *metadataFlags) applyTo(cmd *cobra.Command, rec *question.Record) error {
	flags := cmd.Flags()
	if flags.Changed("difficulty") {
		d, err := question.ParseDifficulty(m.difficulty)
		if err != nil {
			return err
		}
		rec.Difficulty = d
	}
	if flags.Changed("year") {
		y, err := question.ParseYear(m.year)
		if err != nil {
			return err
		}
		rec.Year = y
	}
	if flags.Changed("month") {
		month, err := question.ParseMonth(m.month)
		if err != nil {
			return err
		}
		rec.Month = month
	}
	if flags.Changed("number") {
		rec.QuestionNumber = strings.TrimSpace(m.number)
	}
	return nil
}

// partSpec is a QUESTION_IMAGE:ANSWER_IMAGE pair given to --part.
type partSpec struct {
	question string
	answer   string
}

func parsePartSpec(raw string) (partSpec, error) {
	q, a, ok := strings.Cut(raw, ":")
	q, a = strings.TrimSpace(q), strings.TrimSpace(a)
	if !ok || q == "" || a == "" {
		return partSpec{}, fmt.Errorf("part %q: expected QUESTION_IMAGE:ANSWER_IMAGE", raw)
	}
	return partSpec{question: q, answer: a}, nil
}

// importParts imports each part's images and appends labelled parts.
func importParts(lib *images.Library, parts []question.Part, specs []string) ([]question.Part, error) {
	for _, raw := range specs {
		spec, err := parsePartSpec(raw)
		if err != nil {
			return nil, err
		}
		qRef, err := lib.Import(spec.question)
		if err != nil {
			return nil, err
		}
		aRef, err := lib.Import(spec.answer)
		if err != nil {
			return nil, err
		}
		parts = append(parts, question.Part{
			Label:         question.NextPartLabel(parts),
			QuestionImage: qRef,
			AnswerImage:   aRef,
		})
	}
	return parts, nil
}

// relabelParts applies INDEX=LABEL edits (1-based). Labels are free text
// and may repeat.
func relabelParts(parts []question.Part, specs []string) error {
	for _, raw := range specs {
		idx, label, ok := strings.Cut(raw, "=")
		label = strings.TrimSpace(label)
		if !ok || label == "" {
			return fmt.Errorf("part label %q: expected INDEX=LABEL", raw)
		}
		n, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil || n < 1 || n > len(parts) {
			return fmt.Errorf("part label %q: index must be between 1 and %d", raw, len(parts))
		}
		parts[n-1].Label = label
	}
	return nil
}

// mergeTags appends additions not already present and drops removals.
// Blank entries are ignored.
func mergeTags(current, add, remove []string) []string {
	out := make([]string, 0, len(current)+len(add))
	for _, tag := range current {
		if !slices.Contains(remove, tag) {
			out = append(out, tag)
		}
	}
	for _, tag := range add {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(out, tag) || slices.Contains(remove, tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// setAnswer switches a Paper 1 record to a choice or an image answer.
func setAnswer(lib *images.Library, rec *question.Record, choice, image string) error {
	switch {
	case choice != "" && image != "":
		return errors.New("give either --answer-choice or --answer-image, not both")
	case choice != "":
		token, err := question.ParseAnswerChoice(choice)
		if err != nil {
			return err
		}
		rec.AnswerKind = question.AnswerSelection
		rec.AnswerChoice = token
		rec.AnswerImage = ""
	case image != "":
		ref, err := lib.Import(image)
		if err != nil {
			return err
		}
		rec.AnswerKind = question.AnswerImage
		rec.AnswerImage = ref
		rec.AnswerChoice = ""
	}
	return nil
}
