package pg

import (
	"context"

	_ "github.com/lib/pq"
	"github.com/nimasrn/donor-hub/pkg/logger"
	"github.com/pressly/goose/v3"
)

// Migrate runs a goose command ("up", "down", "status", "redo", ...)
// against the migrations found in dir.
func Migrate(ctx context.Context, cfg Config, dir, command string, args ...string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := newSqlConnection(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err = goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return err
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err == nil {
		logger.Info("migrations", "command", command, "version", version, "dir", dir)
	}
	return nil
}
