package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	// Register the postgres and sqlite3 drivers
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite3"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS index_values (
		name  TEXT NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		date  DATE NOT NULL,
		PRIMARY KEY (name, date)
	)`,
	`CREATE TABLE IF NOT EXISTS portfolio_navs (
		portfolio TEXT NOT NULL,
		nav       DOUBLE PRECISION NOT NULL,
		date      DATE NOT NULL,
		PRIMARY KEY (portfolio, date)
	)`,
}

// SQLStore wraps the connection pool together with its driver name so that
// queries can be rebound to the driver's placeholder style.
type SQLStore struct {
	DB     *sql.DB
	Driver string
}

func OpenSQL(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	if driver != DriverPostgres && driver != DriverSqlite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}
	if driver == DriverSqlite {
		// in-memory databases are per connection
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping %s: %w", driver, err)
	}

	log.Info().Str("driver", driver).Msg("Connected to SQL store")
	return &SQLStore{DB: db, Driver: driver}, nil
}

func (s *SQLStore) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.DB.Close()
}

// Rebind turns ? placeholders into $1..$n for postgres.
func (s *SQLStore) Rebind(query string) string {
	return Rebind(s.Driver, query)
}

func Rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
