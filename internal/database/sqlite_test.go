package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llamachat/internal/repository"
)

func TestInitDB_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "chat.db")

	db, err := InitDB(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'kv_store'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv_store", name)
}

func TestInitDB_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chat.db")

	db, err := InitDB(path)
	require.NoError(t, err)
	require.NoError(t, repository.NewSQLiteRepository(db).Set(ctx, "chatHistory", "[]"))
	require.NoError(t, db.Close())

	// A second start must not fail on the already-applied migration and must keep data.
	db, err = InitDB(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	got, err := repository.NewSQLiteRepository(db).Get(ctx, "chatHistory")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}
