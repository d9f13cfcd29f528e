package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/chatvault/internal/common"
	"github.com/dmitrijs2005/chatvault/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	m := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, m.RunMigrations(context.Background(), db))
	return db, m
}

func TestEnsureUser_CreatesOnFirstContact(t *testing.T) {
	db, m := setupStore(t)
	s := NewUserService(db, m, "Personal", true)
	ctx := context.Background()

	user, err := s.EnsureUser(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, int64(42), user.FolderID, "numeric identity becomes the default folder")
	assert.Equal(t, "Personal", user.FolderName)
}

func TestEnsureUser_Idempotent(t *testing.T) {
	db, m := setupStore(t)
	s := NewUserService(db, m, "Personal", true)
	ctx := context.Background()

	first, err := s.EnsureUser(ctx, "42")
	require.NoError(t, err)

	second, err := s.EnsureUser(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, first.FolderID, second.FolderID)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestEnsureUser_NonNumericIdentity(t *testing.T) {
	db, m := setupStore(t)
	s := NewUserService(db, m, "Personal", true)
	ctx := context.Background()

	first, err := s.EnsureUser(ctx, "alice@example")
	require.NoError(t, err)
	assert.Positive(t, first.FolderID)

	second, err := s.EnsureUser(ctx, "alice@example")
	require.NoError(t, err)
	assert.Equal(t, first.FolderID, second.FolderID, "derived folder id is stable")
}

func TestRegistered_PhoneGate(t *testing.T) {
	db, m := setupStore(t)
	ctx := context.Background()

	gated := NewUserService(db, m, "Personal", true)
	user, err := gated.EnsureUser(ctx, "42")
	require.NoError(t, err)
	assert.False(t, gated.Registered(user))

	open := NewUserService(db, m, "Personal", false)
	assert.True(t, open.Registered(user), "gate off: everyone is registered")
}

func TestCompleteRegistration_StoresPhoneAndHashedPin(t *testing.T) {
	db, m := setupStore(t)
	s := NewUserService(db, m, "Personal", true)
	ctx := context.Background()

	_, err := s.EnsureUser(ctx, "42")
	require.NoError(t, err)

	require.NoError(t, s.CompleteRegistration(ctx, "42", "+100200300", "1234"))

	user, err := s.EnsureUser(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "+100200300", user.Phone)
	assert.True(t, s.Registered(user))

	require.NotEmpty(t, user.PinHash)
	assert.NotEqual(t, "1234", user.PinHash, "pin is never stored in clear")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte("1234")))
}

func TestCompleteRegistration_WithoutPin(t *testing.T) {
	db, m := setupStore(t)
	s := NewUserService(db, m, "Personal", true)
	ctx := context.Background()

	_, err := s.EnsureUser(ctx, "42")
	require.NoError(t, err)

	require.NoError(t, s.CompleteRegistration(ctx, "42", "+100200300", ""))

	user, err := s.EnsureUser(ctx, "42")
	require.NoError(t, err)
	assert.Empty(t, user.PinHash)
}

func TestCompleteRegistration_EmptyPhoneRejected(t *testing.T) {
	db, m := setupStore(t)
	s := NewUserService(db, m, "Personal", true)

	err := s.CompleteRegistration(context.Background(), "42", "", "1234")
	assert.ErrorIs(t, err, common.ErrRegistrationRequired)
}
