// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tasktracker/tasktracker-go/internal/repository"
)

// NewDB opens an in-memory sqlite database with foreign keys enforced and
// the schema applied. It is closed when the test ends.
func NewDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := repository.NewDB(repository.DriverSQLite, ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, repository.EnsureSchema(context.Background(), db, repository.DriverSQLite))
	return db
}
