package repository

import (
	"context"
	"database/sql"
	"fmt"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS ` + "`user`" + ` (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		login      VARCHAR(128) NOT NULL UNIQUE,
		password   VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS post (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		title       VARCHAR(100) NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		posted_at   DATETIME NOT NULL,
		user_id     INTEGER NOT NULL REFERENCES ` + "`user`" + `(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_post_posted_at ON post (posted_at)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS ` + "`user`" + ` (
		id         BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		login      VARCHAR(128) NOT NULL UNIQUE,
		password   VARCHAR(255) NOT NULL,
		created_at DATETIME(6) NOT NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS post (
		id          BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title       VARCHAR(100) NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		posted_at   DATETIME(6) NOT NULL,
		user_id     BIGINT NOT NULL,
		INDEX idx_post_posted_at (posted_at),
		CONSTRAINT fk_post_user FOREIGN KEY (user_id) REFERENCES ` + "`user`" + `(id)
	) ENGINE=InnoDB`,
}

// EnsureSchema creates the user and post tables if they do not exist. It is
// safe to call on every start.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case DriverSQLite:
		stmts = sqliteSchema
	case DriverMySQL:
		stmts = mysqlSchema
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
