package collections

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/applists/internal/common"
	"github.com/dmitrijs2005/applists/internal/models"
	"github.com/dmitrijs2005/applists/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newCollection(t *testing.T, r *SQLiteRepository, id, name, description string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, r.Create(context.Background(), &models.Collection{
		ID: id, Name: name, Description: description, CreatedAt: now, UpdatedAt: now,
	}))
}

func seedList(t *testing.T, db *sql.DB, id, title, collectionID string) {
	t.Helper()
	var col any
	if collectionID != "" {
		col = collectionID
	}
	_, err := db.Exec(
		`INSERT INTO lists(id, title, created_at, updated_at, collection_id) VALUES (?, ?, 0, 0, ?)`,
		id, title, col)
	require.NoError(t, err)
}

func TestCreateAndGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	newCollection(t, r, "c1", "Work", "tools for the day job")

	got, err := r.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Name)
	assert.Equal(t, "tools for the day job", got.Description)
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateAndRename(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	newCollection(t, r, "c1", "Work", "")

	require.NoError(t, r.Update(ctx, "c1", "Work stuff", "described"))
	got, err := r.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Work stuff", got.Name)
	assert.Equal(t, "described", got.Description)

	require.NoError(t, r.Rename(ctx, "c1", "Job"))
	got, err = r.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Job", got.Name)
	assert.Equal(t, "described", got.Description, "rename must not clear the description")
}

func TestDelete_ReparentsListsToNull(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	newCollection(t, r, "c1", "Work", "")
	seedList(t, db, "l1", "Tools", "c1")

	require.NoError(t, r.Delete(ctx, "c1"))

	var col sql.NullString
	require.NoError(t, db.QueryRow(`SELECT collection_id FROM lists WHERE id='l1'`).Scan(&col))
	assert.False(t, col.Valid, "foreign key must detach the list, not delete it")

	assert.NoError(t, r.Delete(ctx, "c1"), "second delete is a no-op")
}

func TestGetWithLists_AndListCount(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	newCollection(t, r, "c1", "Work", "")
	seedList(t, db, "l1", "Tools", "c1")
	seedList(t, db, "l2", "Editors", "c1")
	seedList(t, db, "l3", "Games", "")

	got, err := r.GetWithLists(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.ListCount())

	n, err := r.ListCount(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSearch(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	newCollection(t, r, "c1", "Work", "")
	newCollection(t, r, "c2", "Personal", "")

	got, err := r.Search(context.Background(), "ork")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
}
