package tagstate

import (
	"fmt"
	"strings"
)

// Namespace names an independent tag vocabulary.
type Namespace string

const (
	Keywords Namespace = "keyword"
	Topics   Namespace = "topic"
)

// ParseNamespace accepts keyword(s) or topic(s).
func ParseNamespace(raw string) (Namespace, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "keyword", "keywords", "k":
		return Keywords, nil
	case "topic", "topics", "t":
		return Topics, nil
	}
	return "", fmt.Errorf("tag namespace %q: expected keyword or topic", raw)
}

// State carries one Selection per namespace.
type State struct {
	Keywords Selection `json:"keywords"`
	Topics   Selection `json:"topics"`
}

// Selection returns the selection for ns.
func (s State) Selection(ns Namespace) Selection {
	if ns == Topics {
		return s.Topics
	}
	return s.Keywords
}

// Classify returns the class of tag in ns.
func (s State) Classify(ns Namespace, tag string) Class {
	return Classify(s.Selection(ns), tag)
}

// Toggle returns s with tag advanced one step in ns.
func (s State) Toggle(ns Namespace, tag string) State {
	return s.with(ns, Toggle(s.Selection(ns), tag))
}

// Set returns s with tag moved to class in ns.
func (s State) Set(ns Namespace, tag string, class Class) State {
	return s.with(ns, Set(s.Selection(ns), tag, class))
}

// Prune drops selections for tags no longer present in the vocabularies.
func (s State) Prune(keywords, topics []string) State {
	return State{
		Keywords: Prune(s.Keywords, keywords),
		Topics:   Prune(s.Topics, topics),
	}
}

func (s State) with(ns Namespace, sel Selection) State {
	if ns == Topics {
		s.Topics = sel
	} else {
		s.Keywords = sel
	}
	return s
}
