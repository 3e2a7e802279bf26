package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/licensekeeper/internal/dbx"
	"github.com/dmitrijs2005/licensekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/licensekeeper/internal/server/repositories/licenses"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Licenses(db dbx.DBTX) licenses.Repository
}
