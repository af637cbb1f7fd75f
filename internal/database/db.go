package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/greeting-service/internal/config"
)

// Open connects to the configured storage engine and verifies the connection.
// The pool is capped at a single connection; every statement in the process
// goes through it.
func Open(cfg config.Config) (*sql.DB, error) {
	driver, dsn, err := dataSource(cfg)
	if err != nil {
		return nil, err
	}
	if driver == config.DriverSQLite && cfg.DBPath != ":memory:" {
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	// an in-memory sqlite database lives only as long as its connection
	if driver == config.DriverMySQL {
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// dataSource maps the config onto a database/sql driver name and DSN.
func dataSource(cfg config.Config) (driver, dsn string, err error) {
	switch cfg.DBDriver {
	case config.DriverSQLite, "":
		path := cfg.DBPath
		if path == "" {
			path = "./data/database.db"
		}
		if path == ":memory:" {
			return config.DriverSQLite, path, nil
		}
		return config.DriverSQLite, "file:" + path + "?_pragma=busy_timeout(5000)", nil
	case config.DriverMySQL:
		auth := cfg.DBUser
		if cfg.DBPass != "" {
			auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
		}
		// utf8mb4 is needed for the Spanish catalog entries
		return config.DriverMySQL, fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			auth, cfg.DBHost, cfg.DBPort, cfg.DBName), nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}
