package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/chatvault/internal/common"
	"github.com/dmitrijs2005/chatvault/internal/dbx"
	"github.com/dmitrijs2005/chatvault/internal/server/models"
)

// SQLiteRepository implements user storage using a DBTX
// (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT OR IGNORE INTO users (user_id, folder_id, folder_name) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, user.ID, user.FolderID, user.FolderName); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	query := `select user_id, folder_id, folder_name, phone, pin_hash from users where user_id=?`

	user := &models.User{}
	var phone, pinHash sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&user.ID, &user.FolderID, &user.FolderName, &phone, &pinHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	user.Phone = phone.String
	user.PinHash = pinHash.String
	return user, nil
}

func (r *SQLiteRepository) SetContact(ctx context.Context, userID, phone, pinHash string) error {
	query := `update users set phone=?, pin_hash=? where user_id=?`
	res, err := r.db.ExecContext(ctx, query, phone, pinHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
