package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"qbank/internal/question"
)

const shortIDLength = 8

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func renderRecordTable(records []question.Record) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			shortID(rec.ID),
			paperLabel(rec.PaperType),
			rec.Year.String(),
			string(rec.Month),
			fallback(rec.QuestionNumber, "-"),
			string(rec.Difficulty),
			joinTags(rec.Keywords),
			joinTags(rec.Topics),
			humanize.Time(rec.CreatedAt),
		})
	}
	return renderTable(
		[]string{"ID", "Paper", "Year", "Month", "No.", "Difficulty", "Keywords", "Topics", "Added"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
		40,
	)
}

func renderRecordDetail(rec question.Record, resolve func(string) string) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%-16s %s\n", label+":", value)
	}
	line("ID", rec.ID)
	line("Added", fmt.Sprintf("%s (%s)", rec.CreatedAt.Local().Format(time.DateTime), humanize.Time(rec.CreatedAt)))
	line("Paper", string(rec.PaperType))
	line("Question number", fallback(rec.QuestionNumber, "-"))
	line("Year", rec.Year.String())
	line("Month", string(rec.Month))
	line("Difficulty", string(rec.Difficulty))
	line("Keywords", fallback(joinTags(rec.Keywords), "-"))
	line("Topics", fallback(joinTags(rec.Topics), "-"))

	switch rec.PaperType {
	case question.PaperOne:
		line("Question image", resolve(rec.QuestionImage))
		if rec.AnswerKind == question.AnswerSelection {
			line("Answer", rec.AnswerChoice)
		} else {
			line("Answer image", resolve(rec.AnswerImage))
		}
	case question.PaperTwo:
		b.WriteString("\n")
		rows := make([][]string, 0, len(rec.Parts))
		for _, part := range rec.Parts {
			rows = append(rows, []string{part.Label, resolve(part.QuestionImage), resolve(part.AnswerImage)})
		}
		b.WriteString(renderTable([]string{"Part", "Question image", "Answer image"}, rows, nil, 0))
		b.WriteString("\n")
	}
	return b.String()
}

func paperLabel(pt question.PaperType) string {
	switch pt {
	case question.PaperOne:
		return "P1"
	case question.PaperTwo:
		return "P2"
	default:
		return string(pt)
	}
}

func joinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
