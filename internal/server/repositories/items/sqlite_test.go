package items

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/chatvault/internal/common"
	"github.com/dmitrijs2005/chatvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  folder_id INTEGER NOT NULL,
  kind TEXT NOT NULL,
  text TEXT,
  file_id TEXT,
  file_name TEXT,
  caption TEXT
);
`)
	require.NoError(t, err)

	return db
}

func insertN(t *testing.T, r *SQLiteRepository, folderID int64, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		id, err := r.Insert(context.Background(), &models.Item{
			FolderID: folderID,
			Kind:     models.KindText,
			Text:     fmt.Sprintf("note %d", i),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestInsert_AssignsMonotonicIDs(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	ids := insertN(t, r, 10, 3)
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])
}

func TestCount_MatchesInserts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	insertN(t, r, 10, 4)
	insertN(t, r, 20, 2)

	total, err := r.Count(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	total, err = r.Count(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	total, err = r.Count(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestGetByID_ScopedToFolder(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	id, err := r.Insert(ctx, &models.Item{
		FolderID: 10,
		Kind:     models.KindPhoto,
		FileID:   "ph-1",
		Caption:  "sunset",
	})
	require.NoError(t, err)

	item, err := r.GetByID(ctx, 10, id)
	require.NoError(t, err)
	assert.Equal(t, models.KindPhoto, item.Kind)
	assert.Equal(t, "ph-1", item.FileID)
	assert.Equal(t, "sunset", item.Caption)

	// the same id is invisible from another folder
	_, err = r.GetByID(ctx, 20, id)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID_UnknownID(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.GetByID(context.Background(), 10, 7)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList_DescendingAndPaged(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	ids := insertN(t, r, 10, 12)
	insertN(t, r, 20, 3) // noise in another folder

	const pageSize = 5
	var seen []int64
	for offset := 0; ; offset += pageSize {
		refs, err := r.List(ctx, 10, pageSize, offset)
		require.NoError(t, err)
		if len(refs) == 0 {
			break
		}
		assert.LessOrEqual(t, len(refs), pageSize)
		for _, ref := range refs {
			seen = append(seen, ref.ID)
		}
	}

	// strictly descending ids
	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i-1], seen[i])
	}

	// union over all pages equals the folder's full item set
	require.Len(t, seen, len(ids))
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for _, id := range seen {
		assert.True(t, want[id], "id %d belongs to the folder", id)
		delete(want, id)
	}
	assert.Empty(t, want, "no omissions")
}

func TestClear_RemovesOnlyThatFolder(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	ids := insertN(t, r, 10, 3)
	insertN(t, r, 20, 2)

	n, err := r.Clear(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	total, err := r.Count(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	for _, id := range ids {
		_, err := r.GetByID(ctx, 10, id)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	}

	total, err = r.Count(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "other folders untouched")
}
