// Package filterstate persists the active filter between CLI invocations:
// the tri-state tag selections plus the text and categorical selectors.
// It also keeps the metadata last used when adding a question, which seeds
// the next one.
//
// The file is plain JSON written atomically. A missing file means "no
// filter"; an unreadable one is logged and treated the same way.
package filterstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"qbank/internal/fileutil"
	"qbank/internal/logging"
	"qbank/internal/query"
	"qbank/internal/question"
	"qbank/internal/tagstate"
)

// Saved is the persisted filter. Empty selector strings mean All.
type Saved struct {
	Text       string         `json:"text,omitempty"`
	Tags       tagstate.State `json:"tags"`
	PaperType  string         `json:"paper_type,omitempty"`
	Year       string         `json:"year,omitempty"`
	Difficulty string         `json:"difficulty,omitempty"`
	UpdatedAt  time.Time      `json:"updated_at,omitzero"`
}

// Filter converts s into a query filter. Selector strings that no longer
// parse are reported as errors rather than silently ignored.
func (s Saved) Filter() (query.Filter, error) {
	f := query.Filter{
		Text:            strings.TrimSpace(s.Text),
		IncludeKeywords: s.Tags.Keywords.Included,
		ExcludeKeywords: s.Tags.Keywords.Excluded,
		IncludeTopics:   s.Tags.Topics.Included,
		ExcludeTopics:   s.Tags.Topics.Excluded,
	}
	if s.PaperType != "" {
		pt, err := question.ParsePaperType(s.PaperType)
		if err != nil {
			return query.Filter{}, err
		}
		f.PaperType = query.Only(pt)
	}
	if s.Year != "" {
		year, err := question.ParseYear(s.Year)
		if err != nil {
			return query.Filter{}, err
		}
		f.Year = query.Only(year)
	}
	if s.Difficulty != "" {
		d, err := question.ParseDifficulty(s.Difficulty)
		if err != nil {
			return query.Filter{}, err
		}
		f.Difficulty = query.Only(d)
	}
	if err := f.Validate(); err != nil {
		return query.Filter{}, err
	}
	return f, nil
}

// IsEmpty reports whether s constrains nothing.
func (s Saved) IsEmpty() bool {
	return strings.TrimSpace(s.Text) == "" && s.PaperType == "" && s.Year == "" && s.Difficulty == "" &&
		s.Tags.Keywords.IsEmpty() && s.Tags.Topics.IsEmpty()
}

// Store provides synchronized access to the filter file.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
	saved  Saved
}

// Open loads the filter file at path. If path is empty the store keeps its
// state in memory only.
func Open(path string, logger *slog.Logger) *Store {
	logger = logging.NewComponentLogger(logger, "filterstate")
	s := &Store{path: path, logger: logger}
	if path == "" {
		return s
	}
	if err := s.load(); err != nil {
		logger.Warn("failed to load saved filter",
			logging.String(logging.FieldEventType, "filterstate_load_failed"),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run `qbank filter reset` to rewrite the file"),
			logging.String(logging.FieldImpact, "listing starts without a saved filter"))
	}
	return s
}

// Current returns a copy of the saved filter.
func (s *Store) Current() Saved {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved
}

// Update applies fn to the saved filter and persists the result. The new
// value must convert to a valid query filter.
func (s *Store) Update(fn func(Saved) Saved) (Saved, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.saved)
	if _, err := next.Filter(); err != nil {
		return s.saved, fmt.Errorf("invalid filter: %w", err)
	}
	next.UpdatedAt = time.Now().UTC()
	if err := s.save(next); err != nil {
		return s.saved, fmt.Errorf("persist filter: %w", err)
	}
	s.saved = next

	s.logger.Debug("saved filter updated",
		logging.String(logging.FieldEventType, "filterstate_updated"),
		logging.Int("included_keywords", len(next.Tags.Keywords.Included)),
		logging.Int("excluded_keywords", len(next.Tags.Keywords.Excluded)),
		logging.Int("included_topics", len(next.Tags.Topics.Included)),
		logging.Int("excluded_topics", len(next.Tags.Topics.Excluded)))
	return next, nil
}

// Toggle advances tag one step in ns and persists the result.
func (s *Store) Toggle(ns tagstate.Namespace, tag string) (Saved, error) {
	return s.Update(func(cur Saved) Saved {
		cur.Tags = cur.Tags.Toggle(ns, tag)
		return cur
	})
}

// Prune drops tag selections that no longer exist in the vocabularies.
// Nothing is written when no selection changes.
func (s *Store) Prune(keywords, topics []string) (Saved, error) {
	cur := s.Current()
	pruned := cur.Tags.Prune(keywords, topics)
	if sameSelection(cur.Tags.Keywords, pruned.Keywords) && sameSelection(cur.Tags.Topics, pruned.Topics) {
		return cur, nil
	}
	return s.Update(func(cur Saved) Saved {
		cur.Tags = cur.Tags.Prune(keywords, topics)
		return cur
	})
}

// Reset clears the saved filter.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(Saved{}); err != nil {
		return fmt.Errorf("persist filter: %w", err)
	}
	s.saved = Saved{}
	s.logger.Debug("saved filter reset", logging.String(logging.FieldEventType, "filterstate_reset"))
	return nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read filter file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var saved Saved
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("parse filter file: %w", err)
	}
	if _, err := saved.Filter(); err != nil {
		return fmt.Errorf("saved filter: %w", err)
	}
	s.saved = saved
	s.logger.Debug("loaded saved filter", logging.String("path", s.path))
	return nil
}

func (s *Store) save(saved Saved) error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal filter: %w", err)
	}
	return fileutil.WriteAtomic(s.path, data, 0o644)
}

func sameSelection(a, b tagstate.Selection) bool {
	return len(a.Included) == len(b.Included) && len(a.Excluded) == len(b.Excluded)
}
