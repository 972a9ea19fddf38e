package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/isdelr/campus-api/internal/auth"
	"github.com/isdelr/campus-api/internal/database"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh in-memory database with the full schema. A single
// connection keeps every statement on the same in-memory instance.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func newTestTokenManager() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", "campus-api", "campus-clients", time.Hour)
}

func newTestAuthService(t *testing.T) (*AuthService, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(db, newTestTokenManager()), db
}
