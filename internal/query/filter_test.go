package query_test

import (
	"testing"

	"qbank/internal/query"
	"qbank/internal/question"
	"qbank/internal/testsupport"
)

func ids(records []question.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestInclusionIsConjunctiveExclusionDisjunctive(t *testing.T) {
	f := query.Filter{
		IncludeKeywords: []string{"A", "B"},
		ExcludeKeywords: []string{"C"},
	}
	cases := []struct {
		name     string
		keywords []string
		want     bool
	}{
		{"has both plus other", []string{"A", "B", "D"}, true},
		{"missing B", []string{"A"}, false},
		{"excluded present", []string{"A", "B", "C"}, false},
		{"nothing", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := testsupport.PaperOne("q", testsupport.WithKeywords(tc.keywords...))
			if got := query.Matches(rec, f); got != tc.want {
				t.Fatalf("expected %t, got %t", tc.want, got)
			}
		})
	}
}

func TestTopicConstraintsMirrorKeywords(t *testing.T) {
	records := []question.Record{
		testsupport.PaperOne("both", testsupport.WithTopics("B.4", "C.1")),
		testsupport.PaperOne("one", testsupport.WithTopics("B.4")),
		testsupport.PaperOne("excluded", testsupport.WithTopics("B.4", "C.1", "D.2")),
	}
	f := query.Filter{IncludeTopics: []string{"B.4", "C.1"}, ExcludeTopics: []string{"D.2", "E.1"}}
	got := ids(query.Apply(records, f))
	if len(got) != 1 || got[0] != "both" {
		t.Fatalf("expected only 'both', got %v", got)
	}
}

func TestExclusionAlone(t *testing.T) {
	records := []question.Record{
		testsupport.PaperOne("plain"),
		testsupport.PaperOne("tagged", testsupport.WithKeywords("X")),
		testsupport.PaperOne("other", testsupport.WithKeywords("Y")),
	}
	got := ids(query.Apply(records, query.Filter{ExcludeKeywords: []string{"X", "Y"}}))
	if len(got) != 1 || got[0] != "plain" {
		t.Fatalf("expected only 'plain', got %v", got)
	}
}

func TestTextSearch(t *testing.T) {
	rec := testsupport.PaperOne("q",
		testsupport.WithKeywords("Simple Harmonic Motion"),
		testsupport.WithTopics("C.1"),
		testsupport.WithQuestionNumber("Q12b"))
	cases := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"harmonic", true},
		{"HARMONIC", true},
		{"c.1", true},
		{"q12", true},
		{"optics", false},
		{"Paper", false},
	}
	for _, tc := range cases {
		if got := query.Matches(rec, query.Filter{Text: tc.text}); got != tc.want {
			t.Fatalf("text %q: expected %t, got %t", tc.text, tc.want, got)
		}
	}
}

func TestTextSearchFoldsUnicodeCase(t *testing.T) {
	rec := testsupport.PaperOne("q", testsupport.WithKeywords("Énergie cinétique"))
	if !query.Matches(rec, query.Filter{Text: "ÉNERGIE CINÉ"}) {
		t.Fatal("expected accented upper case to fold onto lower case")
	}
}

func TestCategoricalSelectors(t *testing.T) {
	records := []question.Record{
		testsupport.PaperOne("p1-2021-hard", testsupport.WithYear(2021), testsupport.WithDifficulty(question.Hard)),
		testsupport.PaperTwo("p2-2021", testsupport.WithYear(2021)),
		testsupport.PaperOne("p1-unknown"),
	}

	got := ids(query.Apply(records, query.Filter{PaperType: query.Only(question.PaperOne)}))
	if len(got) != 2 || got[0] != "p1-2021-hard" || got[1] != "p1-unknown" {
		t.Fatalf("paper filter: got %v", got)
	}
	got = ids(query.Apply(records, query.Filter{Difficulty: query.Only(question.Hard)}))
	if len(got) != 1 || got[0] != "p1-2021-hard" {
		t.Fatalf("difficulty filter: got %v", got)
	}
	got = ids(query.Apply(records, query.Filter{}))
	if len(got) != 3 {
		t.Fatalf("zero filter should match everything, got %v", got)
	}
}

func TestYearSentinelDistinctness(t *testing.T) {
	unknown := testsupport.PaperOne("unknown")
	known := testsupport.PaperOne("known", testsupport.WithYear(2021))

	for _, year := range []int{0, 2021, 1999} {
		if query.Matches(unknown, query.Filter{Year: query.Only(question.YearOf(year))}) {
			t.Fatalf("Unknown year must not match %d", year)
		}
	}
	if query.Matches(known, query.Filter{Year: query.Only(question.UnknownYear)}) {
		t.Fatal("2021 must not match Unknown")
	}
	if !query.Matches(unknown, query.Filter{Year: query.Only(question.UnknownYear)}) {
		t.Fatal("Unknown must match Unknown")
	}
	if !query.Matches(known, query.Filter{Year: query.Only(question.YearOf(2021))}) {
		t.Fatal("2021 must match 2021")
	}
}

func TestApplyKeepsInputOrderAndDoesNotMutate(t *testing.T) {
	records := []question.Record{
		testsupport.PaperOne("c", testsupport.WithKeywords("k")),
		testsupport.PaperOne("a", testsupport.WithKeywords("k")),
		testsupport.PaperOne("b"),
	}
	got := ids(query.Apply(records, query.Filter{IncludeKeywords: []string{"k"}}))
	if len(got) != 2 || got[0] != "c" || got[1] != "a" {
		t.Fatalf("expected input order, got %v", got)
	}
	if records[0].ID != "c" || records[2].ID != "b" || len(records) != 3 {
		t.Fatal("input slice was modified")
	}
}

func TestValidateRejectsOverlap(t *testing.T) {
	if err := (query.Filter{IncludeKeywords: []string{"a"}, ExcludeKeywords: []string{"a"}}).Validate(); err == nil {
		t.Fatal("expected keyword overlap to be rejected")
	}
	if err := (query.Filter{IncludeTopics: []string{"x"}, ExcludeTopics: []string{"x"}}).Validate(); err == nil {
		t.Fatal("expected topic overlap to be rejected")
	}
	if err := (query.Filter{IncludeKeywords: []string{"a"}, ExcludeTopics: []string{"a"}}).Validate(); err != nil {
		t.Fatalf("namespaces are independent, got %v", err)
	}
}

func TestIsEmpty(t *testing.T) {
	if !(query.Filter{Text: "  "}).IsEmpty() {
		t.Fatal("blank text should count as empty")
	}
	if (query.Filter{Year: query.Only(question.UnknownYear)}).IsEmpty() {
		t.Fatal("year selector set should not be empty")
	}
}
