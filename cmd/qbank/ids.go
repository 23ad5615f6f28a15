package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"qbank/internal/library"
)

// resolveID accepts a full record ID or an unambiguous prefix of one, as
// printed by `qbank list`.
func resolveID(ctx context.Context, lib *library.Library, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("question id is required")
	}
	if _, err := lib.Get(ctx, raw); err == nil {
		return raw, nil
	} else if !errors.Is(err, library.ErrNotFound) {
		return "", err
	}

	records, err := lib.Records(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, rec := range records {
		if strings.HasPrefix(rec.ID, raw) {
			matches = append(matches, rec.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", library.ErrNotFound, raw)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("question id prefix %q is ambiguous (%d matches)", raw, len(matches))
	}
}
