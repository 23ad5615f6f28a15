package filterstate_test

import (
	"os"
	"path/filepath"
	"testing"

	"qbank/internal/filterstate"
	"qbank/internal/question"
)

func TestStickyRoundTripSeedsRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_metadata.json")

	empty, err := filterstate.LoadSticky(path)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	rec := question.New(question.PaperOne)
	empty.Seed(&rec)
	if rec.Difficulty != question.Medium || !rec.Year.IsUnknown() || rec.Month != question.UnknownMonth {
		t.Fatalf("zero sticky changed defaults: %+v", rec)
	}

	src := question.New(question.PaperTwo)
	src.Difficulty = question.Hard
	src.Year = question.YearOf(2021)
	src.Month = question.May
	if err := filterstate.SaveSticky(path, filterstate.StickyFrom(src)); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := filterstate.LoadSticky(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	next := question.New(question.PaperOne)
	loaded.Seed(&next)
	if next.Difficulty != question.Hard || next.Year != question.YearOf(2021) || next.Month != question.May {
		t.Fatalf("seeded = %+v", next)
	}
}

func TestLoadStickyRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_metadata.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := filterstate.LoadSticky(path); err == nil {
		t.Fatal("expected parse error")
	}
}
