package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/chatvault/internal/dbx"
	sqlitemigrations "github.com/dmitrijs2005/chatvault/internal/server/migrations/sqlite"
	"github.com/dmitrijs2005/chatvault/internal/server/repositories/items"
	"github.com/dmitrijs2005/chatvault/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories. This is the
// canonical single-file deployment; PostgreSQL is for shared installs.
type SQLiteRepositoryManager struct{}

// NewSQLiteRepositoryManager constructs a SQLite-backed RepositoryManager.
func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

// Items returns an items.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Items(db dbx.DBTX) items.Repository {
	return items.NewSQLiteRepository(db)
}

// RunMigrations points goose at the embedded SQLite migrations and runs
// them against the provided connection.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(sqlitemigrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
