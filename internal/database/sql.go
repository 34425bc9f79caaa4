package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"entgo.io/ent/dialect"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Config for database connection
type Config struct {
	Dialect    string // dialect.Postgres or dialect.SQLite
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

// DSN builds the driver connection string for the configured dialect
func (c Config) DSN() (string, error) {
	switch c.Dialect {
	case dialect.Postgres:
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
		), nil
	case dialect.SQLite:
		// Foreign keys must be on for ent's SQLite migrator.
		return fmt.Sprintf("file:%s?cache=shared&_fk=1", c.SQLitePath), nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", c.Dialect)
	}
}

// Open connects to the configured SQL database and verifies the connection
func Open(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	return OpenDSN(ctx, cfg.Dialect, dsn)
}

// OpenDSN opens a database for an explicit driver name and DSN. The ent
// dialect names double as database/sql driver names.
func OpenDSN(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Printf("✅ Connected to %s", driver)
	return db, nil
}
