package tagstate_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"qbank/internal/tagstate"
)

func TestToggleCycle(t *testing.T) {
	var sel tagstate.Selection
	want := []tagstate.Class{tagstate.Include, tagstate.Exclude, tagstate.Neutral}
	for i, class := range want {
		sel = tagstate.Toggle(sel, "waves")
		if got := tagstate.Classify(sel, "waves"); got != class {
			t.Fatalf("toggle %d: expected %s, got %s", i+1, class, got)
		}
	}
	if !sel.IsEmpty() {
		t.Fatalf("expected empty selection after full cycle, got %+v", sel)
	}
}

func TestToggleIsPure(t *testing.T) {
	sel := tagstate.Selection{Included: []string{"a", "b"}}
	next := tagstate.Toggle(sel, "a")
	if !slices.Equal(sel.Included, []string{"a", "b"}) || len(sel.Excluded) != 0 {
		t.Fatalf("input mutated: %+v", sel)
	}
	if !slices.Equal(next.Included, []string{"b"}) || !slices.Equal(next.Excluded, []string{"a"}) {
		t.Fatalf("unexpected result: %+v", next)
	}
}

func TestDisjointUnderRandomToggles(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	tags := []string{"a", "b", "c", "d"}
	classes := []tagstate.Class{tagstate.Neutral, tagstate.Include, tagstate.Exclude}
	var state tagstate.State
	for i := 0; i < 2000; i++ {
		ns := tagstate.Keywords
		if rng.IntN(2) == 1 {
			ns = tagstate.Topics
		}
		tag := tags[rng.IntN(len(tags))]
		if rng.IntN(4) == 0 {
			state = state.Set(ns, tag, classes[rng.IntN(len(classes))])
		} else {
			state = state.Toggle(ns, tag)
		}
		for _, sel := range []tagstate.Selection{state.Keywords, state.Topics} {
			for _, included := range sel.Included {
				if slices.Contains(sel.Excluded, included) {
					t.Fatalf("step %d: %q both included and excluded: %+v", i, included, sel)
				}
			}
			if hasDuplicates(sel.Included) || hasDuplicates(sel.Excluded) {
				t.Fatalf("step %d: duplicate entries: %+v", i, sel)
			}
		}
	}
}

func hasDuplicates(tags []string) bool {
	seen := map[string]bool{}
	for _, tag := range tags {
		if seen[tag] {
			return true
		}
		seen[tag] = true
	}
	return false
}

func TestNamespacesAreIndependent(t *testing.T) {
	var state tagstate.State
	state = state.Toggle(tagstate.Keywords, "B.4")
	if got := state.Classify(tagstate.Topics, "B.4"); got != tagstate.Neutral {
		t.Fatalf("topic namespace affected by keyword toggle: %s", got)
	}
	if got := state.Classify(tagstate.Keywords, "B.4"); got != tagstate.Include {
		t.Fatalf("expected keyword include, got %s", got)
	}
}

func TestPrune(t *testing.T) {
	state := tagstate.State{
		Keywords: tagstate.Selection{Included: []string{"waves", "gone"}, Excluded: []string{"old"}},
		Topics:   tagstate.Selection{Excluded: []string{"B.4"}},
	}
	pruned := state.Prune([]string{"waves"}, []string{"B.4"})
	if !slices.Equal(pruned.Keywords.Included, []string{"waves"}) || len(pruned.Keywords.Excluded) != 0 {
		t.Fatalf("unexpected keyword selection: %+v", pruned.Keywords)
	}
	if !slices.Equal(pruned.Topics.Excluded, []string{"B.4"}) {
		t.Fatalf("unexpected topic selection: %+v", pruned.Topics)
	}
}

func TestParsers(t *testing.T) {
	if ns, err := tagstate.ParseNamespace("Topics"); err != nil || ns != tagstate.Topics {
		t.Fatalf("expected topic namespace, got %q (%v)", ns, err)
	}
	if _, err := tagstate.ParseNamespace("year"); err == nil {
		t.Fatal("expected error for unknown namespace")
	}
	if c, err := tagstate.ParseClass("-"); err != nil || c != tagstate.Exclude {
		t.Fatalf("expected exclude, got %s (%v)", c, err)
	}
	if _, err := tagstate.ParseClass("maybe"); err == nil {
		t.Fatal("expected error for unknown class")
	}
}
