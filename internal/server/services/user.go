// Package services contains the server-side business logic. This file
// implements UserService: lazy user creation and the phone-gated
// registration exchange.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/dmitrijs2005/chatvault/internal/common"
	"github.com/dmitrijs2005/chatvault/internal/dbx"
	"github.com/dmitrijs2005/chatvault/internal/server/models"
	"github.com/dmitrijs2005/chatvault/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// UserService provides user lifecycle operations:
// - EnsureUser: idempotent get-or-create on first contact
// - CompleteRegistration: store the shared phone and optional PIN
// - Registered: whether the contact exchange is done
type UserService struct {
	db                *sql.DB
	repomanager       repomanager.RepositoryManager
	defaultFolderName string
	requirePhone      bool
}

// NewUserService constructs a UserService using repositories and settings.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, defaultFolderName string, requirePhone bool) *UserService {
	return &UserService{
		db:                db,
		repomanager:       m,
		defaultFolderName: defaultFolderName,
		requirePhone:      requirePhone,
	}
}

// EnsureUser returns the user row for userID, creating it on first contact
// with the self-identity default folder. Get-or-create runs in one
// transaction so concurrent first contacts cannot race.
func (s *UserService) EnsureUser(ctx context.Context, userID string) (*models.User, error) {
	var user *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		existing, err := repo.GetByID(ctx, userID)
		if err == nil {
			user = existing
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		user = &models.User{
			ID:         userID,
			FolderID:   defaultFolderID(userID),
			FolderName: s.defaultFolderName,
		}
		return repo.Create(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("error ensuring user: %w", err)
	}

	return user, nil
}

// Registered reports whether the user may run commands. When the phone gate
// is off, every user counts as registered.
func (s *UserService) Registered(user *models.User) bool {
	return !s.requirePhone || user.Phone != ""
}

// CompleteRegistration stores the shared phone number and, when a PIN is
// given, its bcrypt hash. The PIN itself is never persisted.
func (s *UserService) CompleteRegistration(ctx context.Context, userID, phone, pin string) error {
	if phone == "" {
		return common.ErrRegistrationRequired
	}

	var pinHash string
	if pin != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("error hashing pin: %w", err)
		}
		pinHash = string(h)
	}

	return s.repomanager.Users(s.db).SetContact(ctx, userID, phone, pinHash)
}

// defaultFolderID derives the default folder from the chat identity: the
// numeric identity itself when it parses, an FNV hash otherwise.
func defaultFolderID(userID string) int64 {
	if id, err := strconv.ParseInt(userID, 10, 64); err == nil {
		return id
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(userID))
	return int64(h.Sum64() & (1<<63 - 1))
}
