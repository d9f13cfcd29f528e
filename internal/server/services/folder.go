package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/chatvault/internal/server/models"
	"github.com/dmitrijs2005/chatvault/internal/server/repositories/repomanager"
)

// Page is one listing window of a folder, newest first.
type Page struct {
	Index   int
	Entries []models.ItemRef
	Total   int64
	HasPrev bool
	HasNext bool
}

// FolderService implements the folder-scoped content store: insert, paged
// listing, count, scoped fetch and bulk clear.
type FolderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	pageSize    int
}

// NewFolderService constructs a FolderService with the given page size.
func NewFolderService(db *sql.DB, m repomanager.RepositoryManager, pageSize int) *FolderService {
	return &FolderService{
		db:          db,
		repomanager: m,
		pageSize:    pageSize,
	}
}

// PageSize returns the fixed listing window size.
func (s *FolderService) PageSize() int {
	return s.pageSize
}

// Save appends item to the folder and returns the assigned id.
func (s *FolderService) Save(ctx context.Context, folderID int64, item models.Item) (int64, error) {
	item.FolderID = folderID

	id, err := s.repomanager.Items(s.db).Insert(ctx, &item)
	if err != nil {
		return 0, fmt.Errorf("error saving item: %w", err)
	}
	return id, nil
}

// Page returns listing window index for the folder. An out-of-range index
// yields an empty window; Total is always the folder's full item count.
func (s *FolderService) Page(ctx context.Context, folderID int64, index int) (*Page, error) {
	if index < 0 {
		index = 0
	}

	repo := s.repomanager.Items(s.db)

	total, err := repo.Count(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("error counting items: %w", err)
	}

	page := &Page{Index: index, Total: total}
	if total == 0 {
		return page, nil
	}

	offset := index * s.pageSize
	entries, err := repo.List(ctx, folderID, s.pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}

	page.Entries = entries
	page.HasPrev = index > 0
	page.HasNext = int64(offset+s.pageSize) < total
	return page, nil
}

// Item returns one item by id, scoped to the folder.
func (s *FolderService) Item(ctx context.Context, folderID, itemID int64) (*models.Item, error) {
	return s.repomanager.Items(s.db).GetByID(ctx, folderID, itemID)
}

// Clear irreversibly deletes every item in the folder and returns the count
// removed. There is no soft delete and no undo.
func (s *FolderService) Clear(ctx context.Context, folderID int64) (int64, error) {
	n, err := s.repomanager.Items(s.db).Clear(ctx, folderID)
	if err != nil {
		return 0, fmt.Errorf("error clearing folder: %w", err)
	}
	return n, nil
}
