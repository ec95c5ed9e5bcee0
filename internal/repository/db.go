package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// NewDB opens a connection pool for driver ("sqlite3" or "mysql") and checks
// that it is reachable.
func NewDB(driver, dsn string) (*sql.DB, error) {
	if driver != DriverSQLite && driver != DriverMySQL {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	switch driver {
	case DriverSQLite:
		// One connection: sqlite serializes writers anyway, and an in-memory
		// database lives only as long as its connection.
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	case DriverMySQL:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	slog.Debug("database connected", "driver", driver)
	return db, nil
}
