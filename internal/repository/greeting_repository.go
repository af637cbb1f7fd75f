// Package repository contains data access logic separated from HTTP handlers.
// This file defines the repository for the greetings table.  Rows are written
// once by the seed routine and only read afterwards.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides the row type handed to scan callbacks
	"strings"

	"github.com/iliyamo/greeting-service/internal/config"
	"github.com/iliyamo/greeting-service/internal/database"
	"github.com/iliyamo/greeting-service/internal/model"
)

const createGreetingsSQLite = `CREATE TABLE IF NOT EXISTS greetings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timeOfDay TEXT NOT NULL,
	language TEXT NOT NULL,
	greetingMessage TEXT NOT NULL,
	tone TEXT NOT NULL
)`

const createGreetingsMySQL = `CREATE TABLE IF NOT EXISTS greetings (
	id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	timeOfDay VARCHAR(64) NOT NULL,
	language VARCHAR(64) NOT NULL,
	greetingMessage VARCHAR(255) NOT NULL,
	tone VARCHAR(64) NOT NULL
) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin`

// GreetingRepo encapsulates all queries against the greetings table.  It
// depends on a database.Store which owns the connection.
type GreetingRepo struct {
	store  *database.Store
	driver string
}

// NewGreetingRepo constructs a GreetingRepo.  driver selects the DDL dialect
// used by EnsureSchema and is one of config.DriverSQLite or config.DriverMySQL.
func NewGreetingRepo(store *database.Store, driver string) *GreetingRepo {
	return &GreetingRepo{store: store, driver: driver}
}

// EnsureSchema creates the greetings table if it does not exist yet.
func (r *GreetingRepo) EnsureSchema(ctx context.Context) error {
	ddl := createGreetingsSQLite
	if r.driver == config.DriverMySQL {
		ddl = createGreetingsMySQL
	}
	_, err := r.store.Exec(ctx, ddl)
	return err
}

// Count returns the number of stored greetings.
func (r *GreetingRepo) Count(ctx context.Context) (int, error) {
	const q = "SELECT COUNT(*) FROM greetings"
	var n int
	if _, err := r.store.FetchOne(ctx, q, nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// Create inserts a greeting.  On success g.ID holds the generated id.
func (r *GreetingRepo) Create(ctx context.Context, g *model.Greeting) error {
	if !g.Valid() {
		return ErrInvalidGreeting
	}
	const q = "INSERT INTO greetings (timeOfDay, language, greetingMessage, tone) VALUES (?, ?, ?, ?)"
	res, err := r.store.Exec(ctx, q, g.TimeOfDay, g.Language, g.GreetingMessage, g.Tone)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return &database.StorageError{Op: "last_insert_id", Query: q, Err: err}
	}
	g.ID = uint64(id)
	return nil
}

// DeleteByIDs removes the given greetings.  It exists for the seed routine
// to undo its own partial run; the API never deletes.
func (r *GreetingRepo) DeleteByIDs(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	q := "DELETE FROM greetings WHERE id IN (?" + strings.Repeat(", ?", len(ids)-1) + ")"
	_, err := r.store.Exec(ctx, q, args...)
	return err
}

// FindMessage returns the message of the first greeting, in engine order,
// whose three keys match exactly.  ErrGreetingNotFound is returned when no
// row matches.
func (r *GreetingRepo) FindMessage(ctx context.Context, timeOfDay, language, tone string) (string, error) {
	const q = "SELECT greetingMessage FROM greetings WHERE timeOfDay = ? AND language = ? AND tone = ?"
	var msg string
	found, err := r.store.FetchOne(ctx, q, []any{timeOfDay, language, tone}, &msg)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrGreetingNotFound
	}
	return msg, nil
}

// DistinctTimesOfDay lists every timeOfDay value present in the table.
func (r *GreetingRepo) DistinctTimesOfDay(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "SELECT DISTINCT timeOfDay FROM greetings")
}

// DistinctLanguages lists every language value present in the table.
func (r *GreetingRepo) DistinctLanguages(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "SELECT DISTINCT language FROM greetings")
}

func (r *GreetingRepo) distinct(ctx context.Context, q string) ([]string, error) {
	out := []string{}
	err := r.store.FetchAll(ctx, q, nil, func(rows *sql.Rows) error {
		var v string
		if err := rows.Scan(&v); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
