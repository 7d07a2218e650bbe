package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

var postgresDialect = dialect{
	name: "pgx5",
	ph:   dollar,
	isUnique: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == "23505"
	},
	isReference: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && (pgErr.Code == "23503" || pgErr.Code == "23514")
	},
}

// NewPostgresStore connects a pgx pool to databaseURL, migrates it and
// exposes it through the same Store used for SQLite.
func NewPostgresStore(ctx context.Context, databaseURL string, migrationsFS fs.FS) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("can not create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("can not connect with database : %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		db.Close()
		pool.Close()
		return nil, fmt.Errorf("failed to set up migrate driver : %w", err)
	}
	if err := runMigrations(driver, postgresDialect.name, migrationsFS); err != nil {
		db.Close()
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database : %w", err)
	}

	return &Store{db: db, dialect: postgresDialect, closers: []func(){pool.Close}}, nil
}
