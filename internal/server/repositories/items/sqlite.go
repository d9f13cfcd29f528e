package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/chatvault/internal/common"
	"github.com/dmitrijs2005/chatvault/internal/dbx"
	"github.com/dmitrijs2005/chatvault/internal/server/models"
)

// SQLiteRepository implements item storage using a DBTX
// (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, item *models.Item) (int64, error) {
	query := `insert into items (folder_id, kind, text, file_id, file_name, caption)
			values (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		item.FolderID, item.Kind, item.Text, item.FileID, item.FileName, item.Caption)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) List(ctx context.Context, folderID int64, limit, offset int) ([]models.ItemRef, error) {
	query := `select id, kind from items where folder_id=? order by id desc limit ? offset ?`
	rows, err := r.db.QueryContext(ctx, query, folderID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	var result []models.ItemRef
	for rows.Next() {
		var ref models.ItemRef
		if err := rows.Scan(&ref.ID, &ref.Kind); err != nil {
			return nil, err
		}
		result = append(result, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context, folderID int64) (int64, error) {
	query := `select count(*) from items where folder_id=?`

	var total int64
	if err := r.db.QueryRowContext(ctx, query, folderID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return total, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, folderID, itemID int64) (*models.Item, error) {
	query := `select id, folder_id, kind, text, file_id, file_name, caption from items
			where folder_id=? and id=?`

	item := &models.Item{}
	var text, fileID, fileName, caption sql.NullString
	err := r.db.QueryRowContext(ctx, query, folderID, itemID).
		Scan(&item.ID, &item.FolderID, &item.Kind, &text, &fileID, &fileName, &caption)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select item: %w", err)
	}
	item.Text = text.String
	item.FileID = fileID.String
	item.FileName = fileName.String
	item.Caption = caption.String
	return item, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, folderID int64) (int64, error) {
	query := `delete from items where folder_id=?`

	res, err := r.db.ExecContext(ctx, query, folderID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear folder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
