package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// DefaultMigrationsTable is the goose version table.
const DefaultMigrationsTable = "schema_migrations"

// Migrate applies the SQL migrations in fsys over conn.
// conn must be a *pgxpool.Pool; run it with the schema role.
func Migrate(ctx context.Context, conn Conn, migrations fs.FS, table string, log *slog.Logger) error {
	pool, ok := conn.(*pgxpool.Pool)
	if !ok {
		return fmt.Errorf("%w: migrations need a pgx pool, got %T", ErrUnsupportedConn, conn)
	}
	if table == "" {
		table = DefaultMigrationsTable
	}

	// The *sql.DB shares the pool's connections and is not closed here.
	db := stdlib.OpenDBFromPool(pool)

	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLoggerAdapter{log})
	goose.SetTableName(table)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrSetDialect, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	return nil
}

type gooseLoggerAdapter struct {
	log *slog.Logger
}

func (g *gooseLoggerAdapter) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

// Fatalf logs at error level; goose returns the error to the caller.
func (g *gooseLoggerAdapter) Fatalf(format string, args ...any) {
	g.log.Error(fmt.Sprintf(format, args...))
}
