// Package export writes record views as a JSON array for backup and
// inspection. The format is one-way; nothing reads it back.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"qbank/internal/fileutil"
	"qbank/internal/question"
)

// WriteJSON writes records to w as an indented JSON array. A nil or empty
// slice is written as [].
func WriteJSON(w io.Writer, records []question.Record) error {
	if records == nil {
		records = []question.Record{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return nil
}

// WriteFile writes records to path, replacing any existing file atomically.
func WriteFile(path string, records []question.Record) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, records); err != nil {
		return err
	}
	if err := fileutil.WriteAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}
	return nil
}
