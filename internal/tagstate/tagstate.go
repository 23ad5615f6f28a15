// Package tagstate holds the include/exclude/neutral classification of tag
// values, one Selection per namespace.
//
// Every transition is a pure function returning a new Selection. Included
// and Excluded are disjoint after every operation.
package tagstate

import (
	"fmt"
	"slices"
	"strings"
)

// Class is the tri-state classification of one tag value.
type Class int

const (
	Neutral Class = iota
	Include
	Exclude
)

func (c Class) String() string {
	switch c {
	case Include:
		return "include"
	case Exclude:
		return "exclude"
	default:
		return "neutral"
	}
}

// Next returns the class a single toggle moves to:
// neutral → include → exclude → neutral.
func (c Class) Next() Class {
	switch c {
	case Neutral:
		return Include
	case Include:
		return Exclude
	default:
		return Neutral
	}
}

// ParseClass accepts include, exclude, or neutral (also "+", "-", "none").
func ParseClass(raw string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "include", "+":
		return Include, nil
	case "exclude", "-":
		return Exclude, nil
	case "neutral", "none", "":
		return Neutral, nil
	}
	return Neutral, fmt.Errorf("tag class %q: expected include, exclude or neutral", raw)
}

// Selection is the included and excluded tag values of one namespace.
type Selection struct {
	Included []string `json:"included"`
	Excluded []string `json:"excluded"`
}

// Classify returns the class of tag within sel.
func Classify(sel Selection, tag string) Class {
	switch {
	case slices.Contains(sel.Included, tag):
		return Include
	case slices.Contains(sel.Excluded, tag):
		return Exclude
	default:
		return Neutral
	}
}

// Toggle advances tag one step through neutral → include → exclude → neutral.
func Toggle(sel Selection, tag string) Selection {
	return Set(sel, tag, Classify(sel, tag).Next())
}

// Set moves tag to class, removing it from the other set.
func Set(sel Selection, tag string, class Class) Selection {
	out := Selection{
		Included: without(sel.Included, tag),
		Excluded: without(sel.Excluded, tag),
	}
	switch class {
	case Include:
		out.Included = append(out.Included, tag)
	case Exclude:
		out.Excluded = append(out.Excluded, tag)
	}
	return out
}

// Prune drops selected tags that are not in known.
func Prune(sel Selection, known []string) Selection {
	keep := func(tags []string) []string {
		out := make([]string, 0, len(tags))
		for _, tag := range tags {
			if slices.Contains(known, tag) {
				out = append(out, tag)
			}
		}
		return out
	}
	return Selection{Included: keep(sel.Included), Excluded: keep(sel.Excluded)}
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.Included) == 0 && len(s.Excluded) == 0
}

func without(tags []string, tag string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}
