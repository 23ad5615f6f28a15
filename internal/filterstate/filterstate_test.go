package filterstate_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"qbank/internal/filterstate"
	"qbank/internal/question"
	"qbank/internal/tagstate"
)

func TestToggleAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.json")
	store := filterstate.Open(path, nil)

	if _, err := store.Toggle(tagstate.Keywords, "waves"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := store.Toggle(tagstate.Topics, "B.4"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := store.Toggle(tagstate.Topics, "B.4"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	reopened := filterstate.Open(path, nil)
	saved := reopened.Current()
	if !slices.Equal(saved.Tags.Keywords.Included, []string{"waves"}) {
		t.Fatalf("keywords = %+v", saved.Tags.Keywords)
	}
	if !slices.Equal(saved.Tags.Topics.Excluded, []string{"B.4"}) {
		t.Fatalf("topics = %+v", saved.Tags.Topics)
	}
	if saved.UpdatedAt.IsZero() {
		t.Fatal("expected UpdatedAt to be set")
	}

	f, err := saved.Filter()
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if !slices.Equal(f.IncludeKeywords, []string{"waves"}) || !slices.Equal(f.ExcludeTopics, []string{"B.4"}) {
		t.Fatalf("unexpected filter: %+v", f)
	}
}

func TestSelectorsConvertToFilter(t *testing.T) {
	saved := filterstate.Saved{PaperType: "2", Year: "Unknown", Difficulty: "hard", Text: " waves "}
	f, err := saved.Filter()
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if pt, ok := f.PaperType.Value(); !ok || pt != question.PaperTwo {
		t.Fatalf("paper type = %v, %v", pt, ok)
	}
	if year, ok := f.Year.Value(); !ok || !year.IsUnknown() {
		t.Fatalf("year = %v, %v", year, ok)
	}
	if d, ok := f.Difficulty.Value(); !ok || d != question.Hard {
		t.Fatalf("difficulty = %v, %v", d, ok)
	}
	if f.Text != "waves" {
		t.Fatalf("text = %q", f.Text)
	}
}

func TestUpdateRejectsInvalidSelector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.json")
	store := filterstate.Open(path, nil)

	_, err := store.Update(func(s filterstate.Saved) filterstate.Saved {
		s.Year = "last year"
		return s
	})
	if err == nil {
		t.Fatal("expected invalid year to be rejected")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("rejected update should not write the file, stat err = %v", statErr)
	}
}

func TestPruneDropsVanishedTags(t *testing.T) {
	store := filterstate.Open(filepath.Join(t.TempDir(), "filter.json"), nil)
	_, err := store.Update(func(s filterstate.Saved) filterstate.Saved {
		s.Tags = s.Tags.Set(tagstate.Keywords, "waves", tagstate.Include)
		s.Tags = s.Tags.Set(tagstate.Keywords, "gone", tagstate.Exclude)
		return s
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	saved, err := store.Prune([]string{"waves"}, nil)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if len(saved.Tags.Keywords.Excluded) != 0 || !slices.Equal(saved.Tags.Keywords.Included, []string{"waves"}) {
		t.Fatalf("unexpected selection after prune: %+v", saved.Tags.Keywords)
	}
}

func TestResetClearsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.json")
	store := filterstate.Open(path, nil)
	if _, err := store.Toggle(tagstate.Keywords, "waves"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := store.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !filterstate.Open(path, nil).Current().IsEmpty() {
		t.Fatal("expected empty filter after reset")
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.json")
	if err := os.WriteFile(path, []byte("not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := filterstate.Open(path, nil)
	if !store.Current().IsEmpty() {
		t.Fatal("expected empty filter after corrupt file")
	}
	if _, err := store.Toggle(tagstate.Keywords, "waves"); err != nil {
		t.Fatalf("toggle after corrupt file: %v", err)
	}
}

func TestEmptyPathKeepsStateInMemory(t *testing.T) {
	store := filterstate.Open("", nil)
	if _, err := store.Toggle(tagstate.Keywords, "waves"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := store.Current().Tags.Classify(tagstate.Keywords, "waves"); got != tagstate.Include {
		t.Fatalf("expected include, got %s", got)
	}
}
