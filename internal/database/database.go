package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

type DB struct {
	*sqlx.DB
	driver string
}

// Querier is satisfied by both *DB and *sqlx.Tx, so repository functions run
// inside or outside a transaction.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Rebind(query string) string
}

// NewDB creates a new database connection and makes sure the schema exists.
func NewDB(driver, dsn string) (*DB, error) {
	switch driver {
	case "", DriverSQLite:
		driver = DriverSQLite
		if dsn == "" {
			dsn = "ecoapp.db"
		}
		dsn = sqliteDSN(dsn)
	case DriverPostgres, "postgres":
		driver = DriverPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// A single connection serialises writers and keeps :memory: databases shared.
		db.SetMaxOpenConns(1)
	}

	dbWrapper := &DB{DB: db, driver: driver}

	if err := dbWrapper.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Component("database").With("driver", driver).Info("database connection established and tables initialized")
	return dbWrapper, nil
}

func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on&_busy_timeout=5000"
}

func (db *DB) Driver() string { return db.driver }

// WithTx runs fn in a transaction, committing when fn returns nil.
func (db *DB) WithTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return apperror.Persistence(err, "begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Component("database").WithError(rbErr).Warn("rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperror.Persistence(err, "commit transaction")
	}
	return nil
}

// createTables creates the necessary database tables. Column types are kept
// to those understood by both SQLite and PostgreSQL.
func (db *DB) createTables() error {
	usersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		display_name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		last_login_at TIMESTAMP,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);`

	streaksTable := `
	CREATE TABLE IF NOT EXISTS user_streaks (
		user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		current_streak INTEGER NOT NULL DEFAULT 0,
		longest_streak INTEGER NOT NULL DEFAULT 0,
		total_entries INTEGER NOT NULL DEFAULT 0,
		last_entry_date TIMESTAMP,
		streak_frozen BOOLEAN NOT NULL DEFAULT FALSE,
		freeze_count INTEGER NOT NULL DEFAULT 0,
		freeze_period TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`

	eventsTable := `
	CREATE TABLE IF NOT EXISTS streak_events (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		event_type TEXT NOT NULL,
		streak_count INTEGER NOT NULL,
		previous_streak INTEGER NOT NULL,
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP NOT NULL
	);`

	achievementsTable := `
	CREATE TABLE IF NOT EXISTS achievements (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		achievement_type TEXT NOT NULL,
		streak_count_when_earned INTEGER NOT NULL,
		earned_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, achievement_type)
	);`

	journalTable := `
	CREATE TABLE IF NOT EXISTS journal_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		entry_date TIMESTAMP NOT NULL,
		analysis TEXT NOT NULL,
		inspiration TEXT NOT NULL DEFAULT '',
		streak_event TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);`

	footprintsTable := `
	CREATE TABLE IF NOT EXISTS footprints (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		total_weekly_kg_co2 DOUBLE PRECISION NOT NULL,
		result TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_streak_events_user ON streak_events(user_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_journal_entries_user ON journal_entries(user_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_footprints_user ON footprints(user_id, created_at);`,
	}

	for _, query := range []string{usersTable, streaksTable, eventsTable, achievementsTable, journalTable, footprintsTable} {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, index := range indexes {
		if _, err := db.Exec(index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
