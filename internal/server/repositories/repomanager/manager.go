package repomanager

import (
	"context"
	"database/sql"

	"github.com/avdonin/taskhub/internal/dbx"
	"github.com/avdonin/taskhub/internal/server/repositories/tasks"
	"github.com/avdonin/taskhub/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
