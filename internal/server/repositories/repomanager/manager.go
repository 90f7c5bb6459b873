package repomanager

import (
	"context"
	"database/sql"

	"github.com/huseyinozgul/docvault/internal/dbx"
	"github.com/huseyinozgul/docvault/internal/server/repositories/files"
	"github.com/huseyinozgul/docvault/internal/server/repositories/folders"
	"github.com/huseyinozgul/docvault/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can use
// the same code path with *sql.DB and inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Folders(db dbx.DBTX) folders.Repository
	Files(db dbx.DBTX) files.Repository
}
