package store

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrInitialization marks failures to open or create the database.
	ErrInitialization = errors.New("store initialization failed")
	// ErrRead marks failed fetches against an open store.
	ErrRead = errors.New("store read failed")
	// ErrWrite marks a rejected single-record write.
	ErrWrite = errors.New("store write failed")
	// ErrTransaction marks an aborted bulk write. Nothing from the batch was applied.
	ErrTransaction = errors.New("store transaction aborted")
	// ErrSchemaTooNew indicates the database was written by a newer schema version.
	ErrSchemaTooNew = errors.New("database schema is newer than this release supports")
)

// Error describes a failed store operation. Kind is one of the exported
// markers above; errors.Is matches both Kind and the underlying cause.
type Error struct {
	Kind error
	Op   string
	ID   string
	Err  error
}

func newError(kind error, op, id string, err error) *Error {
	return &Error{Kind: kind, Op: op, ID: id, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.ID != "" {
		b.WriteString(" ")
		b.WriteString(strconv.Quote(e.ID))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ErrorKind returns a short classification suitable for logs.
func (e *Error) ErrorKind() string {
	switch e.Kind {
	case ErrInitialization:
		return "initialization"
	case ErrRead:
		return "read"
	case ErrWrite:
		return "write"
	case ErrTransaction:
		return "transaction"
	default:
		return "unknown"
	}
}
