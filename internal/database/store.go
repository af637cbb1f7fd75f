package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// StorageError is returned by every Store operation that fails at the
// storage engine: connection loss, malformed statements, constraint
// violations.  A query that simply matches no row is not a StorageError.
type StorageError struct {
	Op    string // exec, fetch_one, fetch_all, ping
	Query string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err carries a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// Store exclusively owns the database handle and exposes the three
// primitives the rest of the service is built on.  It does no locking of
// its own; concurrent callers queue on the single pooled connection.
type Store struct {
	db *sql.DB
}

// NewStore wraps an already opened handle (see Open).
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that manage its lifetime.
func (s *Store) DB() *sql.DB { return s.db }

// Exec runs a statement that returns no rows.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, &StorageError{Op: "exec", Query: query, Err: err}
	}
	return res, nil
}

// FetchOne scans the first row of query into dest.  found is false, with a
// nil error, when the query matched nothing.
func (s *Store) FetchOne(ctx context.Context, query string, args []any, dest ...any) (found bool, err error) {
	err = s.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &StorageError{Op: "fetch_one", Query: query, Err: err}
	}
	return true, nil
}

// FetchAll calls scan once per result row, in the order the engine returns
// them.  An error from scan stops iteration and is reported as a StorageError.
func (s *Store) FetchAll(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return &StorageError{Op: "fetch_all", Query: query, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return &StorageError{Op: "fetch_all", Query: query, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return &StorageError{Op: "fetch_all", Query: query, Err: err}
	}
	return nil
}

// Ping verifies the connection is still usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}

// Close releases the connection.
func (s *Store) Close() error {
	return s.db.Close()
}
