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

// PostgresRepository implements user storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the user row. An existing row is left untouched, keeping
// the operation idempotent for concurrent first contacts.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_id, folder_id, folder_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, user.ID, user.FolderID, user.FolderName); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT user_id, folder_id, folder_name, phone, pin_hash FROM users
		WHERE user_id = $1
	`
	user := &models.User{}
	var phone, pinHash sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&user.ID, &user.FolderID, &user.FolderName, &phone, &pinHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.Phone = phone.String
	user.PinHash = pinHash.String
	return user, nil
}

func (r *PostgresRepository) SetContact(ctx context.Context, userID, phone, pinHash string) error {
	query := `
		UPDATE users SET phone = $2, pin_hash = $3
		WHERE user_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID, phone, pinHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
