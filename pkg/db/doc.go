// Package db provides the role-keyed PostgreSQL connection pool.
//
// Six roles are registered at bootstrap from db.core.masters.{role}:
// admin, insert, select, update, delete and schema. A role missing from the
// configuration fails the whole registration:
//
//	pool := db.NewPool()
//	if err := pool.CreateRoles(ctx, cfg.DB.Core.Masters); err != nil {
//		return err // *db.PoolConfigError
//	}
//	pool.Seal()
//
//	conn, err := pool.Get(db.RoleSelect) // *db.PoolLookupError for unknown roles
//
// Connections are [github.com/jackc/pgx/v5/pgxpool] pools. Lazy roles return
// immediately and connect on first use; eager roles are pinged with retry.
//
// # Migrations
//
// [Migrate] runs goose migrations over the schema role:
//
//	conn, _ := pool.Get(db.RoleSchema)
//	err := db.Migrate(ctx, conn, migrations, db.DefaultMigrationsTable, log)
//
// # Error Handling
//
// [IsStorageError] classifies pool, connection and server errors so the
// bootstrap can render them as database errors.
package db
