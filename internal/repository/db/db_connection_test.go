package db

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN("app.db")
	require.True(t, strings.HasPrefix(dsn, "app.db?"))

	q, err := url.ParseQuery(strings.SplitN(dsn, "?", 2)[1])
	require.NoError(t, err)
	assert.Equal(t, "immediate", q.Get("_txlock"))
	assert.Contains(t, q["_pragma"], "foreign_keys(1)")
	assert.Contains(t, q["_pragma"], "busy_timeout(5000)")

	assert.Contains(t, DSN("file:x.db?mode=rwc"), "mode=rwc&")
}

func TestInitDB_AppliesMigrations(t *testing.T) {
	db, err := InitDB(":memory:", nil)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "features", "votes"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}
