package kv

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore keeps flags and sets in two small tables
type PostgresStore struct {
	db *sql.DB
}

// ConnectPostgres opens and pings a lib/pq connection pool
func ConnectPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// OpenPostgresStore connects, applies migrations and returns the store
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := ConnectPostgres(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewPostgresStore(db), nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// RunMigrations applies the embedded schema
func RunMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.WithFields(log.Fields{"version": version, "dirty": dirty}).Info("[Store] Migrations applied")
	return nil
}

func (s *PostgresStore) GetFlag(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM storefront_flags WHERE flag_key = $1)", key,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to read flag %s: %w", key, err)
	}
	return exists, nil
}

func (s *PostgresStore) SetFlag(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO storefront_flags (flag_key, set_at) VALUES ($1, $2)
		 ON CONFLICT (flag_key) DO NOTHING`,
		key, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to set flag %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) AddMember(ctx context.Context, set, member string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO storefront_set_members (set_name, member, added_at) VALUES ($1, $2, $3)
		 ON CONFLICT (set_name, member) DO NOTHING`,
		set, member, time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to add member to %s: %w", set, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Members returns the set sorted
func (s *PostgresStore) Members(ctx context.Context, set string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member FROM storefront_set_members WHERE set_name = $1 ORDER BY member", set,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of %s: %w", set, err)
	}
	defer rows.Close()

	members := make([]string, 0)
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
