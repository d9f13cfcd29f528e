// Package items provides repositories for the items table: the persisted
// message payloads, scoped by folder on every read and write.
package items

import (
	"context"

	"github.com/dmitrijs2005/chatvault/internal/server/models"
)

type Repository interface {
	// Insert appends one item and returns its assigned id.
	Insert(ctx context.Context, item *models.Item) (int64, error)

	// List returns at most limit id/kind pairs for the folder, newest first
	// (descending id), skipping offset rows.
	List(ctx context.Context, folderID int64, limit, offset int) ([]models.ItemRef, error)

	// Count returns the total number of items in the folder.
	Count(ctx context.Context, folderID int64) (int64, error)

	// GetByID returns the item or common.ErrorNotFound. The folder scope is
	// part of the lookup: an id valid in another folder is invisible here.
	GetByID(ctx context.Context, folderID, itemID int64) (*models.Item, error)

	// Clear deletes every item in the folder and returns the count removed.
	Clear(ctx context.Context, folderID int64) (int64, error)
}
