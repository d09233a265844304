package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drillforge/drillforge/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations
// applied, configured the same way as the production store.
func NewTestDB(t *testing.T) *sql.DB {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, database.Close())
	})
	return database.DB
}
