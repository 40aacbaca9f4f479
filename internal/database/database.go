package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/workgram/miniapp-server/registrations"
	"github.com/workgram/miniapp-server/users"
)

// Connect opens the sqlite database behind bun. sqlite serializes writers, so
// the pool is capped at a single connection.
func Connect(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dsn, err)
	}
	sqldb.SetMaxOpenConns(1)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// CreateTables creates the schema for every model if it does not exist yet.
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*users.User)(nil),
		(*registrations.Registration)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}
