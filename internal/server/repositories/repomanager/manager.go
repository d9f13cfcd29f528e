// Package repomanager vends repository implementations per database handle
// and owns schema migrations. Services hold a RepositoryManager plus the
// shared *sql.DB and bind repositories to either the pool or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/chatvault/internal/dbx"
	"github.com/dmitrijs2005/chatvault/internal/server/repositories/items"
	"github.com/dmitrijs2005/chatvault/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
}
