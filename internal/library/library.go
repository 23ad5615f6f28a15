package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"qbank/internal/config"
	"qbank/internal/images"
	"qbank/internal/logging"
	"qbank/internal/question"
	"qbank/internal/store"
)

var (
	// ErrLocked means another qbank process holds the library lock.
	ErrLocked = errors.New("library is locked by another qbank process")
	// ErrNotFound means no record has the requested ID.
	ErrNotFound = errors.New("record not found")
)

const lockRetryDelay = 100 * time.Millisecond

// Library coordinates the store, the record cache, and the image directory.
type Library struct {
	store  *store.Store
	images *images.Library
	logger *slog.Logger

	lockPath string
	lock     *flock.Flock

	mu     sync.RWMutex
	cache  map[string]question.Record
	loaded bool
}

// Open acquires the library lock and opens the store described by cfg.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Library, error) {
	if cfg == nil {
		return nil, errors.New("library requires config")
	}
	base := logger
	logger = logging.NewComponentLogger(base, "library")

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("prepare directories: %w", err)
	}
	lockPath := cfg.LockPath()
	lock := flock.New(lockPath)
	if err := acquire(ctx, lock, time.Duration(cfg.Library.LockTimeoutSeconds)*time.Second); err != nil {
		return nil, err
	}

	st, err := store.Open(cfg)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	logger.Debug("library opened",
		logging.String("database", st.Path()),
		logging.String("lock", lockPath))
	return &Library{
		store:    st,
		images:   images.New(cfg.Library.ImageDir, base),
		logger:   logger,
		lockPath: lockPath,
		lock:     lock,
		cache:    make(map[string]question.Record),
	}, nil
}

func acquire(ctx context.Context, lock *flock.Flock, timeout time.Duration) error {
	var (
		ok  bool
		err error
	)
	if timeout <= 0 {
		ok, err = lock.TryLock()
	} else {
		waitCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		ok, err = lock.TryLockContext(waitCtx, lockRetryDelay)
		if errors.Is(err, context.DeadlineExceeded) {
			ok, err = false, nil
		}
	}
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", lock.Path(), err)
	}
	if !ok {
		return fmt.Errorf("%w (lock file %s)", ErrLocked, lock.Path())
	}
	return nil
}

// Close closes the store and releases the lock.
func (l *Library) Close() error {
	if l == nil {
		return nil
	}
	err := l.store.Close()
	if unlockErr := l.lock.Unlock(); unlockErr != nil {
		logging.WarnWithContext(l.logger, "failed to release library lock", "library_unlock_failed",
			logging.Error(unlockErr),
			logging.String("lock", l.lockPath),
			logging.String(logging.FieldErrorHint, "remove the lock file if no qbank process is running"),
			logging.String(logging.FieldImpact, "the next qbank command may wait for the lock"))
	}
	return err
}

// Images returns the image directory manager.
func (l *Library) Images() *images.Library {
	return l.images
}

// DatabasePath returns the database file backing the library.
func (l *Library) DatabasePath() string {
	return l.store.Path()
}

// Records returns every record, newest first.
func (l *Library) Records(ctx context.Context) ([]question.Record, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot(slices.Sorted(maps.Keys(l.cache))), nil
}

// Get returns the record with id.
func (l *Library) Get(ctx context.Context, id string) (question.Record, error) {
	id = strings.TrimSpace(id)
	l.mu.RLock()
	rec, ok := l.cache[id]
	loaded := l.loaded
	l.mu.RUnlock()
	if ok {
		return rec.Clone(), nil
	}
	if loaded {
		return question.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	stored, err := l.store.Get(ctx, id)
	if err != nil {
		return question.Record{}, err
	}
	if stored == nil {
		return question.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	l.mu.Lock()
	l.cache[id] = stored.Clone()
	l.mu.Unlock()
	return *stored, nil
}

// Save upserts rec and refreshes its cache entry.
func (l *Library) Save(ctx context.Context, rec question.Record) error {
	if err := l.store.Put(ctx, rec); err != nil {
		return err
	}
	l.mu.Lock()
	l.cache[rec.ID] = rec.Clone()
	l.mu.Unlock()

	logging.WithContext(logging.WithRecordID(ctx, rec.ID), l.logger).Info("record saved",
		logging.String(logging.FieldEventType, "record_saved"),
		logging.String("paper_type", string(rec.PaperType)))
	return nil
}

// SaveMany upserts records in one transaction. The cache changes only when
// the transaction commits.
func (l *Library) SaveMany(ctx context.Context, records []question.Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := l.store.BulkPut(ctx, records); err != nil {
		return err
	}
	l.mu.Lock()
	for _, rec := range records {
		l.cache[rec.ID] = rec.Clone()
	}
	l.mu.Unlock()

	logging.WithContext(ctx, l.logger).Info("records saved",
		logging.String(logging.FieldEventType, "records_saved"),
		logging.Int(logging.FieldCount, len(records)))
	return nil
}

// Delete removes the record with id. Deleting a missing record succeeds.
func (l *Library) Delete(ctx context.Context, id string) error {
	if err := l.store.Delete(ctx, id); err != nil {
		return err
	}
	l.mu.Lock()
	delete(l.cache, id)
	l.mu.Unlock()

	logging.WithContext(logging.WithRecordID(ctx, id), l.logger).Info("record deleted",
		logging.String(logging.FieldEventType, "record_deleted"))
	return nil
}

// Clear removes every record and returns how many were removed.
func (l *Library) Clear(ctx context.Context) (int64, error) {
	removed, err := l.store.Clear(ctx)
	if err != nil {
		return 0, err
	}
	l.mu.Lock()
	l.cache = make(map[string]question.Record)
	l.loaded = true
	l.mu.Unlock()

	logging.WithContext(ctx, l.logger).Warn("library cleared",
		logging.String(logging.FieldEventType, "library_cleared"),
		logging.Int64(logging.FieldCount, removed),
		logging.String(logging.FieldImpact, "all question records were removed"))
	return removed, nil
}

// Invalidate drops the cache entries for ids, or the whole cache when no
// ids are given. The next read goes to the store.
func (l *Library) Invalidate(ids ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(ids) == 0 {
		l.cache = make(map[string]question.Record)
		l.loaded = false
		return
	}
	for _, id := range ids {
		delete(l.cache, id)
	}
	l.loaded = false
}

func (l *Library) ensureLoaded(ctx context.Context) error {
	l.mu.RLock()
	loaded := l.loaded
	l.mu.RUnlock()
	if loaded {
		return nil
	}

	records, err := l.store.GetAll(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]question.Record, len(records))
	for _, rec := range records {
		l.cache[rec.ID] = rec
	}
	l.loaded = true
	l.logger.Debug("record cache loaded", logging.Int(logging.FieldCount, len(records)))
	return nil
}

// snapshot returns clones of the cached records for ids, newest first.
// Callers hold l.mu.
func (l *Library) snapshot(ids []string) []question.Record {
	out := make([]question.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := l.cache[id]; ok {
			out = append(out, rec.Clone())
		}
	}
	question.SortNewestFirst(out)
	return out
}
