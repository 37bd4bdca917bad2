package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blog-api/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

const driverName = "postgres"

// DB wraps the sqlx connection pool with schema management
type DB struct {
	*sqlx.DB
	log zerolog.Logger
}

// New creates a new database connection with connection pooling
func New(cfg *config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	conn, err := sql.Open(driverName, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.MaxLifetime)

	// Test connection with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := Wrap(conn, log)

	db.log.Info().
		Str("host", cfg.Host).
		Str("database", cfg.Name).
		Int("max_open_conns", cfg.MaxOpenConns).
		Dur("max_lifetime", cfg.MaxLifetime).
		Msg("Database connection established")

	return db, nil
}

// Wrap adopts an already opened *sql.DB
func Wrap(conn *sql.DB, log zerolog.Logger) *DB {
	return &DB{
		DB:  sqlx.NewDb(conn, driverName),
		log: log.With().Str("component", "database").Logger(),
	}
}

// HealthCheck verifies the database connection is healthy
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Close releases every pooled connection
func (db *DB) Close() error {
	db.log.Info().Msg("Closing database connection pool")
	return db.DB.Close()
}
