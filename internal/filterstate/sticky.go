package filterstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"qbank/internal/fileutil"
	"qbank/internal/question"
)

// Sticky is the metadata of the last added question.
type Sticky struct {
	Difficulty question.Difficulty `json:"difficulty,omitempty"`
	Year       question.Year       `json:"year"`
	Month      question.Month      `json:"month,omitempty"`
}

// StickyFrom captures the metadata of rec.
func StickyFrom(rec question.Record) Sticky {
	return Sticky{Difficulty: rec.Difficulty, Year: rec.Year, Month: rec.Month}
}

// Seed copies the remembered metadata onto rec. Unset or unknown values
// leave rec's defaults in place.
func (s Sticky) Seed(rec *question.Record) {
	if s.Difficulty.Valid() {
		rec.Difficulty = s.Difficulty
	}
	if !s.Year.IsUnknown() {
		rec.Year = s.Year
	}
	if s.Month.Valid() {
		rec.Month = s.Month
	}
}

// LoadSticky reads the remembered metadata. A missing file yields the zero
// value.
func LoadSticky(path string) (Sticky, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Sticky{}, nil
		}
		return Sticky{}, fmt.Errorf("read sticky metadata: %w", err)
	}
	var s Sticky
	if err := json.Unmarshal(data, &s); err != nil {
		return Sticky{}, fmt.Errorf("parse sticky metadata: %w", err)
	}
	return s, nil
}

// SaveSticky writes s atomically to path.
func SaveSticky(path string, s Sticky) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sticky metadata: %w", err)
	}
	return fileutil.WriteAtomic(path, data, 0o644)
}
