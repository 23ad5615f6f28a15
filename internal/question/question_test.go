package question_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"qbank/internal/question"
)

func paperOne(id string) question.Record {
	rec := question.New(question.PaperOne)
	rec.ID = id
	rec.QuestionImage = "images/q.png"
	rec.AnswerKind = question.AnswerSelection
	rec.AnswerChoice = "B"
	return rec
}

func paperTwo(id string) question.Record {
	rec := question.New(question.PaperTwo)
	rec.ID = id
	rec.Parts = []question.Part{
		{Label: "a", QuestionImage: "qa.png", AnswerImage: "aa.png"},
		{Label: "b", QuestionImage: "qb.png", AnswerImage: "ab.png"},
	}
	return rec
}

func TestYearJSONRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		year question.Year
		want string
	}{
		{"known", question.YearOf(2021), "2021"},
		{"unknown", question.UnknownYear, `"Unknown"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.year)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, data)
			}
			var decoded question.Year
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if decoded != tc.year {
				t.Fatalf("expected %v, got %v", tc.year, decoded)
			}
		})
	}
}

func TestYearUnmarshalRejectsNull(t *testing.T) {
	var y question.Year
	if err := json.Unmarshal([]byte("null"), &y); err == nil {
		t.Fatal("expected null year to be rejected")
	}
}

func TestParseYear(t *testing.T) {
	if y, err := question.ParseYear("unknown"); err != nil || !y.IsUnknown() {
		t.Fatalf("expected unknown year, got %v (%v)", y, err)
	}
	y, err := question.ParseYear(" 2019 ")
	if err != nil {
		t.Fatalf("ParseYear: %v", err)
	}
	if v, known := y.Int(); !known || v != 2019 {
		t.Fatalf("expected 2019, got %d (known=%t)", v, known)
	}
	for _, bad := range []string{"", "nineteen", "-4", "0"} {
		if _, err := question.ParseYear(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
	if question.YearOf(2020) == question.UnknownYear {
		t.Fatal("known year must not equal Unknown")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*question.Record)
		base   func(string) question.Record
		ok     bool
	}{
		{"paper one selection", func(*question.Record) {}, paperOne, true},
		{"paper two", func(*question.Record) {}, paperTwo, true},
		{"missing id", func(r *question.Record) { r.ID = " " }, paperOne, false},
		{"unknown paper", func(r *question.Record) { r.PaperType = "Paper 3" }, paperOne, false},
		{"paper one with parts", func(r *question.Record) {
			r.Parts = []question.Part{{Label: "a", QuestionImage: "q", AnswerImage: "a"}}
		}, paperOne, false},
		{"paper one bad choice", func(r *question.Record) { r.AnswerChoice = "E" }, paperOne, false},
		{"selection with image", func(r *question.Record) { r.AnswerImage = "a.png" }, paperOne, false},
		{"image answer", func(r *question.Record) {
			r.AnswerKind = question.AnswerImage
			r.AnswerChoice = ""
			r.AnswerImage = "a.png"
		}, paperOne, true},
		{"image answer missing image", func(r *question.Record) {
			r.AnswerKind = question.AnswerImage
			r.AnswerChoice = ""
		}, paperOne, false},
		{"paper two with choice", func(r *question.Record) { r.AnswerChoice = "A" }, paperTwo, false},
		{"paper two without parts", func(r *question.Record) { r.Parts = nil }, paperTwo, false},
		{"duplicate part labels allowed", func(r *question.Record) { r.Parts[1].Label = "a" }, paperTwo, true},
		{"part missing image", func(r *question.Record) { r.Parts[0].AnswerImage = "" }, paperTwo, false},
		{"duplicate keyword", func(r *question.Record) { r.Keywords = []string{"waves", "waves"} }, paperOne, false},
		{"case differs is not duplicate", func(r *question.Record) { r.Keywords = []string{"Waves", "waves"} }, paperOne, true},
		{"duplicate topic", func(r *question.Record) { r.Topics = []string{"B.4", "B.4"} }, paperOne, false},
		{"empty topic", func(r *question.Record) { r.Topics = []string{""} }, paperOne, false},
		{"bad difficulty", func(r *question.Record) { r.Difficulty = "Brutal" }, paperOne, false},
		{"bad month", func(r *question.Record) { r.Month = "June" }, paperOne, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := tc.base("q1")
			tc.mutate(&rec)
			err := rec.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected valid record, got %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, question.ErrInvalidRecord) {
					t.Fatalf("expected ErrInvalidRecord, got %v", err)
				}
			}
		})
	}
}

func TestNewAssignsIdentity(t *testing.T) {
	a := question.New(question.PaperOne)
	b := question.New(question.PaperOne)
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Fatal("expected creation timestamp")
	}
	if !a.Year.IsUnknown() || a.Month != question.UnknownMonth || a.Difficulty != question.Medium {
		t.Fatalf("unexpected defaults: %+v", a)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	rec := paperTwo("q1")
	rec.Keywords = []string{"waves"}
	clone := rec.Clone()
	clone.Keywords[0] = "forces"
	clone.Parts[0].Label = "z"
	if rec.Keywords[0] != "waves" || rec.Parts[0].Label != "a" {
		t.Fatalf("clone shares storage with original: %+v", rec)
	}
}

func TestNextPartLabel(t *testing.T) {
	var parts []question.Part
	for _, want := range []string{"a", "b", "c"} {
		got := question.NextPartLabel(parts)
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
		parts = append(parts, question.Part{Label: got})
	}
}

func TestSortNewestFirstIsStable(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	records := []question.Record{
		{ID: "old", CreatedAt: base},
		{ID: "tie-1", CreatedAt: base.Add(time.Hour)},
		{ID: "new", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "tie-2", CreatedAt: base.Add(time.Hour)},
	}
	question.SortNewestFirst(records)
	want := []string{"new", "tie-1", "tie-2", "old"}
	for i, id := range want {
		if records[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, records[i].ID)
		}
	}
}

func TestParseHelpers(t *testing.T) {
	if p, err := question.ParsePaperType("paper 2"); err != nil || p != question.PaperTwo {
		t.Fatalf("expected Paper 2, got %q (%v)", p, err)
	}
	if _, err := question.ParsePaperType("3"); err == nil {
		t.Fatal("expected error for unknown paper")
	}
	if d, err := question.ParseDifficulty("hard"); err != nil || d != question.Hard {
		t.Fatalf("expected Hard, got %q (%v)", d, err)
	}
	if m, err := question.ParseMonth("nov"); err != nil || m != question.November {
		t.Fatalf("expected November, got %q (%v)", m, err)
	}
	if c, err := question.ParseAnswerChoice("c"); err != nil || c != "C" {
		t.Fatalf("expected C, got %q (%v)", c, err)
	}
}
