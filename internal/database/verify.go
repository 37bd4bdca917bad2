package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"
)

// SchemaMismatchError reports declared tables or columns absent from the database
type SchemaMismatchError struct {
	MissingTables  []string
	MissingColumns map[string][]string // table name -> missing column names
}

func (e *SchemaMismatchError) Error() string {
	if len(e.MissingTables) > 0 {
		return fmt.Sprintf("schema mismatch: missing tables: %s", strings.Join(e.MissingTables, ", "))
	}

	tables := make([]string, 0, len(e.MissingColumns))
	for table := range e.MissingColumns {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		parts = append(parts, fmt.Sprintf("table %q is missing columns: %s",
			table, strings.Join(e.MissingColumns[table], ", ")))
	}
	return "schema mismatch: " + strings.Join(parts, "; ")
}

// ValidateSchema checks that every declared table exists in the current
// schema and carries every declared column. Column types, nullability,
// foreign keys and extra columns are not inspected.
func (db *DB) ValidateSchema(ctx context.Context) error {
	db.log.Info().Strs("tables", TableNames()).Msg("Validating database schema")

	var present []string
	err := db.SelectContext(ctx, &present, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = ANY($1)
	`, pq.Array(TableNames()))
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	existing := make(map[string]bool, len(present))
	for _, name := range present {
		existing[name] = true
	}

	var missingTables []string
	for _, t := range Schema {
		if !existing[t.Name] {
			missingTables = append(missingTables, t.Name)
		}
	}
	if len(missingTables) > 0 {
		db.log.Error().
			Strs("missing_tables", missingTables).
			Msg("Declared tables do not exist; set CREATE_TABLES=true to create them")
		return &SchemaMismatchError{MissingTables: missingTables}
	}

	missingColumns := make(map[string][]string)
	for _, t := range Schema {
		var columns []string
		err := db.SelectContext(ctx, &columns, `
			SELECT column_name FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1
		`, t.Name)
		if err != nil {
			return fmt.Errorf("failed to list columns of %s: %w", t.Name, err)
		}

		if missing := difference(t.Columns, columns); len(missing) > 0 {
			db.log.Error().
				Str("table", t.Name).
				Strs("missing_columns", missing).
				Msg("Declared columns do not exist")
			missingColumns[t.Name] = missing
		}
	}
	if len(missingColumns) > 0 {
		return &SchemaMismatchError{MissingColumns: missingColumns}
	}

	db.log.Info().Msg("Schema validated")
	return nil
}

// CreateTables drops the declared tables if they exist and recreates them
// from the embedded migration.
func (db *DB) CreateTables(ctx context.Context) error {
	db.log.Warn().Strs("tables", TableNames()).Msg("Dropping and recreating tables")

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, migrationsDir)
	if err != nil {
		driver.Close()
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driverName, driver)
	if err != nil {
		src.Close()
		driver.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// Closes the borrowed connection, not the pool.
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	if dirty {
		db.log.Warn().Uint("version", version).Msg("Forcing dirty migration version before drop")
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force migration version %d: %w", version, err)
		}
	}

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	// Tables created outside of the migration history.
	if _, err := conn.ExecContext(ctx, dropTablesQuery()); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	db.log.Info().Strs("tables", TableNames()).Msg("Tables created")
	return nil
}

// dropTablesQuery drops the declared tables in reverse creation order
func dropTablesQuery() string {
	names := make([]string, 0, len(Schema))
	for i := len(Schema) - 1; i >= 0; i-- {
		names = append(names, pq.QuoteIdentifier(Schema[i].Name))
	}
	return "DROP TABLE IF EXISTS " + strings.Join(names, ", ")
}

// difference returns the entries of want absent from have, in want order
func difference(want, have []string) []string {
	seen := make(map[string]bool, len(have))
	for _, h := range have {
		seen[h] = true
	}

	var missing []string
	for _, w := range want {
		if !seen[w] {
			missing = append(missing, w)
		}
	}
	return missing
}
