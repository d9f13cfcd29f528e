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

// PostgresRepository implements item storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, item *models.Item) (int64, error) {
	query := `
		INSERT INTO items (folder_id, kind, text, file_id, file_name, caption)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		item.FolderID, item.Kind, item.Text, item.FileID, item.FileName, item.Caption).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) List(ctx context.Context, folderID int64, limit, offset int) ([]models.ItemRef, error) {
	query := `
		SELECT id, kind FROM items
		WHERE folder_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`
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

func (r *PostgresRepository) Count(ctx context.Context, folderID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM items WHERE folder_id = $1`

	var total int64
	if err := r.db.QueryRowContext(ctx, query, folderID).Scan(&total); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, folderID, itemID int64) (*models.Item, error) {
	query := `
		SELECT id, folder_id, kind, text, file_id, file_name, caption FROM items
		WHERE folder_id = $1 AND id = $2
	`
	item := &models.Item{}
	var text, fileID, fileName, caption sql.NullString
	err := r.db.QueryRowContext(ctx, query, folderID, itemID).
		Scan(&item.ID, &item.FolderID, &item.Kind, &text, &fileID, &fileName, &caption)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	item.Text = text.String
	item.FileID = fileID.String
	item.FileName = fileName.String
	item.Caption = caption.String
	return item, nil
}

func (r *PostgresRepository) Clear(ctx context.Context, folderID int64) (int64, error) {
	query := `DELETE FROM items WHERE folder_id = $1`

	res, err := r.db.ExecContext(ctx, query, folderID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
