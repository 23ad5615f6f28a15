package preflight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"

	"qbank/internal/images"
	"qbank/internal/question"
	"qbank/internal/store"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckLock reports whether another qbank process holds the library lock.
func CheckLock(path string) Result {
	const name = "Library lock"
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if !ok {
		return Result{Name: name, Detail: fmt.Sprintf("%s (held by another qbank process)", path)}
	}
	_ = lock.Unlock()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (free)", path)}
}

// CheckDatabase opens the store at path and counts its records. The open
// store is returned on success for follow-up checks; the caller closes it.
func CheckDatabase(ctx context.Context, path string) (Result, *store.Store) {
	const name = "Database"
	st, err := store.OpenPath(ctx, path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}, nil
	}
	count, err := st.Count(ctx)
	if err != nil {
		_ = st.Close()
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}, nil
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d records)", path, count)}, st
}

// RecordReader is the read side of the store used by CheckImages.
type RecordReader interface {
	GetAll(ctx context.Context) ([]question.Record, error)
}

// CheckImages verifies that every image referenced by a stored record
// exists in the image directory.
func CheckImages(ctx context.Context, st RecordReader, lib *images.Library) Result {
	const name = "Image files"
	records, err := st.GetAll(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("error: %v", err)}
	}

	var refs, broken []string
	for _, rec := range records {
		recRefs := images.Refs(rec)
		refs = append(refs, recRefs...)
		if len(lib.Missing(recRefs)) > 0 {
			broken = append(broken, rec.ID)
		}
	}
	if len(broken) > 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%d of %d records reference missing images: %s",
			len(broken), len(records), summarize(broken, 5))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d references ok", len(refs))}
}

func summarize(ids []string, limit int) string {
	if len(ids) <= limit {
		return strings.Join(ids, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(ids[:limit], ", "), len(ids)-limit)
}
