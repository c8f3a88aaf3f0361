package db

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
)

var (
	dbInstance *sql.DB
	dbOnce     sync.Once
	dbErr      error
)

// GetDB returns a singleton in-memory DuckDB connection with the JSON
// extension loaded. The session locator's fast path runs its bulk log
// scans through this connection; an error here makes the locator fall
// back to the exhaustive filesystem walk.
func GetDB() (*sql.DB, error) {
	dbOnce.Do(func() {
		dbInstance, dbErr = initializeDuckDB()
	})
	return dbInstance, dbErr
}

// Available reports whether the fast scan path can be used at all.
func Available() bool {
	_, err := GetDB()
	return err == nil
}

func initializeDuckDB() (*sql.DB, error) {
	database, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	// DuckDB works best with a single connection.
	database.SetMaxOpenConns(1)
	database.SetMaxIdleConns(1)

	if _, err := database.Exec("INSTALL json"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to install JSON extension: %w", err)
	}
	if _, err := database.Exec("LOAD json"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load JSON extension: %w", err)
	}

	return database, nil
}
