package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	sqlite "github.com/mattn/go-sqlite3"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type dialect struct {
	name        string
	ph          placeholder
	isUnique    func(error) bool
	isReference func(error) bool
}

// Store implements Repository on database/sql for both SQLite and Postgres.
type Store struct {
	db      DBTX
	dialect dialect
	closers []func()
}

var sqliteDialect = dialect{
	name: "sqlite3",
	ph:   questionMark,
	isUnique: func(err error) bool {
		var sqliteErr sqlite.Error
		return errors.As(err, &sqliteErr) &&
			(sqliteErr.ExtendedCode == sqlite.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite.ErrConstraintPrimaryKey)
	},
	isReference: func(err error) bool {
		var sqliteErr sqlite.Error
		return errors.As(err, &sqliteErr) &&
			(sqliteErr.ExtendedCode == sqlite.ErrConstraintForeignKey || sqliteErr.ExtendedCode == sqlite.ErrConstraintCheck)
	},
}

// NewStore opens (creating if needed) the SQLite database at dbPath and
// applies the migrations found under "migrations" in migrationsFS.
func NewStore(dbPath string, migrationsFS fs.FS) (*Store, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("can not create database directory %s: %w", dbDir, err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("can not open database : %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("can not connect with database : %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up migrate driver : %w", err)
	}
	if err := runMigrations(driver, sqliteDialect.name, migrationsFS); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database : %w", err)
	}

	return &Store{db: db, dialect: sqliteDialect}, nil
}

func (s *Store) ExecTx(ctx context.Context, fn func(Repository) error) error {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return fmt.Errorf("store is already in a transaction")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	txStore := &Store{db: tx, dialect: s.dialect}

	err = fn(txStore)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (s *Store) Close() error {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return nil
	}
	err := db.Close()
	for _, c := range s.closers {
		c()
	}
	return err
}

func (s *Store) Driver() string {
	return s.dialect.name
}

func runMigrations(driver database.Driver, name string, migrationsFS fs.FS) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver : %w", err)
	}

	m, err := migrate.NewWithInstance(
		"iofs",
		sourceDriver,
		name,
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to set up migrate instance : %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migration(up) : %w", err)
	}

	return nil
}

// translate maps driver errors onto the package sentinels.
func (s *Store) translate(err error) error {
	switch {
	case s.dialect.isUnique(err):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	case s.dialect.isReference(err):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	default:
		return err
	}
}
