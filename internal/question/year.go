package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const unknownLabel = "Unknown"

// Year is an exam year or the explicit Unknown sentinel. The zero value is
// Unknown. A known year never compares equal to Unknown.
type Year struct {
	value int
	known bool
}

// UnknownYear is the sentinel for records whose exam year was not captured.
var UnknownYear = Year{}

// YearOf returns the known year v.
func YearOf(v int) Year {
	return Year{value: v, known: true}
}

// ParseYear accepts a positive integer or "Unknown" (case-insensitive).
func ParseYear(raw string) (Year, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, unknownLabel) {
		return UnknownYear, nil
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return UnknownYear, fmt.Errorf("year %q: expected a number or %q", raw, unknownLabel)
	}
	if v <= 0 {
		return UnknownYear, fmt.Errorf("year %d: must be positive", v)
	}
	return YearOf(v), nil
}

// Int returns the numeric year and whether it is known.
func (y Year) Int() (int, bool) {
	return y.value, y.known
}

// IsUnknown reports whether y is the Unknown sentinel.
func (y Year) IsUnknown() bool {
	return !y.known
}

// String returns the canonical form used by the store index: the decimal
// year, or "Unknown".
func (y Year) String() string {
	if !y.known {
		return unknownLabel
	}
	return strconv.Itoa(y.value)
}

// MarshalJSON encodes a known year as a number and Unknown as a string.
func (y Year) MarshalJSON() ([]byte, error) {
	if !y.known {
		return json.Marshal(unknownLabel)
	}
	return []byte(strconv.Itoa(y.value)), nil
}

// UnmarshalJSON accepts a number, a numeric string, or "Unknown".
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("year: null is not allowed, use %q", unknownLabel)
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("year: %w", err)
		}
		parsed, err := ParseYear(raw)
		if err != nil {
			return err
		}
		*y = parsed
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("year: %w", err)
	}
	if v <= 0 {
		return fmt.Errorf("year %d: must be positive", v)
	}
	*y = YearOf(v)
	return nil
}
