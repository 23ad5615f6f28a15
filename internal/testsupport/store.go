package testsupport

import (
	"context"
	"testing"

	"qbank/internal/config"
	"qbank/internal/question"
	"qbank/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// MustPut stores each record, failing the test on error.
func MustPut(t testing.TB, st *store.Store, records ...question.Record) {
	t.Helper()

	for _, rec := range records {
		if err := st.Put(context.Background(), rec); err != nil {
			t.Fatalf("store.Put(%s): %v", rec.ID, err)
		}
	}
}

// MustGetAll returns every stored record, failing the test on error.
func MustGetAll(t testing.TB, st *store.Store) []question.Record {
	t.Helper()

	records, err := st.GetAll(context.Background())
	if err != nil {
		t.Fatalf("store.GetAll: %v", err)
	}
	return records
}
