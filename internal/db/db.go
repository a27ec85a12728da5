// Package db stores the cities that produced a prediction so the page can
// suggest them again.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// ErrUnsupportedDriver is returned by Open for drivers other than sqlite3 and postgres
var ErrUnsupportedDriver = errors.New("unsupported database driver")

const schema = `
CREATE TABLE IF NOT EXISTS recent_cities (
	city_key         TEXT PRIMARY KEY,
	city             TEXT NOT NULL,
	last_temperature DOUBLE PRECISION NOT NULL,
	lookups          INTEGER NOT NULL DEFAULT 1,
	searched_at      TIMESTAMP NOT NULL
)`

// RecentCity is a city that has been predicted before
type RecentCity struct {
	City            string    `db:"city" json:"city"`
	LastTemperature float64   `db:"last_temperature" json:"last_temperature"`
	Lookups         int       `db:"lookups" json:"lookups"`
	SearchedAt      time.Time `db:"searched_at" json:"searched_at"`
}

// Store is the recent-city table behind an sqlx handle
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open connects to the database and verifies the connection
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// sqlite serializes writers; one connection also keeps :memory: databases shared
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Migrate creates the schema if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// RecordLookup stores city with its latest predicted temperature and bumps
// its lookup count. Cities differing only in case share a row.
func (s *Store) RecordLookup(ctx context.Context, city string, temperature float64) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errors.New("city must not be empty")
	}

	query := s.db.Rebind(`
		INSERT INTO recent_cities (city_key, city, last_temperature, lookups, searched_at)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT (city_key) DO UPDATE SET
			city = excluded.city,
			last_temperature = excluded.last_temperature,
			lookups = recent_cities.lookups + 1,
			searched_at = excluded.searched_at`)

	_, err := s.db.ExecContext(ctx, query, cityKey(city), city, temperature, s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record lookup for %s: %w", city, err)
	}
	return nil
}

// SearchCities returns up to limit cities starting with prefix, ignoring
// case, most looked-up first.
func (s *Store) SearchCities(ctx context.Context, prefix string, limit int) ([]RecentCity, error) {
	query := s.db.Rebind(`
		SELECT city, last_temperature, lookups, searched_at
		FROM recent_cities
		WHERE city_key LIKE ? ESCAPE '\'
		ORDER BY lookups DESC, searched_at DESC, city ASC
		LIMIT ?`)

	cities := []RecentCity{}
	pattern := escapeLike(cityKey(prefix)) + "%"
	if err := s.db.SelectContext(ctx, &cities, query, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to search cities: %w", err)
	}
	return cities, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
