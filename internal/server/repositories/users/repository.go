// Package users provides repositories for the users table: one row per
// vault owner, keyed by the external chat identity.
package users

import (
	"context"

	"github.com/dmitrijs2005/chatvault/internal/server/models"
)

type Repository interface {
	// Create inserts the user row unless it already exists.
	Create(ctx context.Context, user *models.User) error

	// GetByID returns the user row or common.ErrorNotFound.
	GetByID(ctx context.Context, userID string) (*models.User, error)

	// SetContact stores the shared phone number and optional PIN hash,
	// completing registration.
	SetContact(ctx context.Context, userID, phone, pinHash string) error
}
