package repomanager

import (
	"context"
	"database/sql"

	"github.com/velmarq/walletd/internal/dbx"
	"github.com/velmarq/walletd/internal/server/repositories/accounts"
)

// RepositoryManager vends repository implementations bound to a DBTX (either
// the shared *sql.DB or a transaction) and exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}
