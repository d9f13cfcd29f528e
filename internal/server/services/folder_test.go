package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/chatvault/internal/common"
	"github.com/dmitrijs2005/chatvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveN(t *testing.T, s *FolderService, folderID int64, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		id, err := s.Save(context.Background(), folderID, models.Item{
			Kind: models.KindText,
			Text: fmt.Sprintf("note %d", i),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestSave_AssignsMonotonicIDs(t *testing.T) {
	db, m := setupStore(t)
	s := NewFolderService(db, m, 5)

	ids := saveN(t, s, 1, 3)
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])
}

func TestPage_EmptyFolder(t *testing.T) {
	db, m := setupStore(t)
	s := NewFolderService(db, m, 5)

	page, err := s.Page(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Entries)
	assert.False(t, page.HasPrev)
	assert.False(t, page.HasNext)
}

func TestPage_NewestFirstWindows(t *testing.T) {
	db, m := setupStore(t)
	s := NewFolderService(db, m, 5)
	ctx := context.Background()

	ids := saveN(t, s, 1, 7)

	first, err := s.Page(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), first.Total)
	require.Len(t, first.Entries, 5)
	assert.Equal(t, ids[6], first.Entries[0].ID, "newest comes first")
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)

	second, err := s.Page(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, second.Entries, 2)
	assert.Equal(t, ids[0], second.Entries[1].ID, "oldest comes last")
	assert.True(t, second.HasPrev)
	assert.False(t, second.HasNext)
}

func TestPage_OutOfRangeIndex(t *testing.T) {
	db, m := setupStore(t)
	s := NewFolderService(db, m, 5)
	ctx := context.Background()

	saveN(t, s, 1, 2)

	page, err := s.Page(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Empty(t, page.Entries)

	clamped, err := s.Page(ctx, 1, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, clamped.Index)
	assert.Len(t, clamped.Entries, 2)
}

func TestItem_FolderScoped(t *testing.T) {
	db, m := setupStore(t)
	s := NewFolderService(db, m, 5)
	ctx := context.Background()

	ids := saveN(t, s, 1, 1)

	item, err := s.Item(ctx, 1, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "note 0", item.Text)

	_, err = s.Item(ctx, 2, ids[0])
	assert.ErrorIs(t, err, common.ErrorNotFound, "items are invisible from other folders")
}

func TestClear_RemovesOnlyOwnFolder(t *testing.T) {
	db, m := setupStore(t)
	s := NewFolderService(db, m, 5)
	ctx := context.Background()

	saveN(t, s, 1, 3)
	saveN(t, s, 2, 2)

	n, err := s.Clear(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	other, err := s.Page(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), other.Total)
}
