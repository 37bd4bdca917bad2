package database

import (
	"context"
	"errors"
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tablesQuery  = regexp.QuoteMeta(`FROM information_schema.tables`)
	columnsQuery = regexp.QuoteMeta(`FROM information_schema.columns`)
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return Wrap(conn, zerolog.Nop()), mock
}

func tableRows(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"table_name"})
	for _, n := range names {
		rows.AddRow(n)
	}
	return rows
}

func columnRows(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"column_name"})
	for _, n := range names {
		rows.AddRow(n)
	}
	return rows
}

func TestValidateSchema_Valid(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(tablesQuery).WithArgs(sqlmock.AnyArg()).WillReturnRows(tableRows("posts", "comments"))
	mock.ExpectQuery(columnsQuery).WithArgs("posts").WillReturnRows(columnRows("id", "body"))
	// Extra columns are tolerated.
	mock.ExpectQuery(columnsQuery).WithArgs("comments").WillReturnRows(columnRows("id", "body", "post_id", "created_at"))

	require.NoError(t, db.ValidateSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateSchema_MissingTable(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(tablesQuery).WithArgs(sqlmock.AnyArg()).WillReturnRows(tableRows("posts"))

	err := db.ValidateSchema(context.Background())

	var mismatch *SchemaMismatchError
	require.True(t, errors.As(err, &mismatch), "expected SchemaMismatchError, got %v", err)
	assert.Equal(t, []string{"comments"}, mismatch.MissingTables)
	assert.Empty(t, mismatch.MissingColumns)
	assert.Contains(t, err.Error(), "comments")
	// Column checks are skipped once a table is missing.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateSchema_NoTables(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(tablesQuery).WithArgs(sqlmock.AnyArg()).WillReturnRows(tableRows())

	err := db.ValidateSchema(context.Background())

	var mismatch *SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, []string{"posts", "comments"}, mismatch.MissingTables)
}

func TestValidateSchema_MissingColumn(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(tablesQuery).WithArgs(sqlmock.AnyArg()).WillReturnRows(tableRows("comments", "posts"))
	mock.ExpectQuery(columnsQuery).WithArgs("posts").WillReturnRows(columnRows("id", "body"))
	mock.ExpectQuery(columnsQuery).WithArgs("comments").WillReturnRows(columnRows("id", "body"))

	err := db.ValidateSchema(context.Background())

	var mismatch *SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Empty(t, mismatch.MissingTables)
	assert.Equal(t, map[string][]string{"comments": {"post_id"}}, mismatch.MissingColumns)
	assert.Equal(t, `schema mismatch: table "comments" is missing columns: post_id`, err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateSchema_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	dbErr := errors.New("permission denied")

	mock.ExpectQuery(tablesQuery).WithArgs(sqlmock.AnyArg()).WillReturnError(dbErr)

	err := db.ValidateSchema(context.Background())
	assert.ErrorIs(t, err, dbErr)

	var mismatch *SchemaMismatchError
	assert.False(t, errors.As(err, &mismatch))
}

func TestDropTablesQuery(t *testing.T) {
	assert.Equal(t, `DROP TABLE IF EXISTS "comments", "posts"`, dropTablesQuery())
}

func TestMigrationsCoverSchema(t *testing.T) {
	up, err := fs.ReadFile(migrationsFS, "migrations/000001_create_posts_and_comments.up.sql")
	require.NoError(t, err)
	down, err := fs.ReadFile(migrationsFS, "migrations/000001_create_posts_and_comments.down.sql")
	require.NoError(t, err)

	ddl := string(up)
	for _, table := range Schema {
		assert.Contains(t, ddl, "CREATE TABLE "+table.Name, "up migration must create %s", table.Name)
		assert.Contains(t, string(down), "DROP TABLE IF EXISTS "+table.Name)
		for _, column := range table.Columns {
			assert.Regexp(t, `(?m)^\s+`+column+`\s`, ddl, "column %s.%s not declared", table.Name, column)
		}
	}
	assert.True(t, strings.Contains(ddl, "REFERENCES posts (id)"), "comments.post_id must reference posts")
}

// Ids are int64 in Go, so the columns must be 64-bit or lookups of ids
// above 2^31 fail with an out-of-range error instead of finding nothing.
func TestMigrationsUse64BitIDs(t *testing.T) {
	up, err := fs.ReadFile(migrationsFS, "migrations/000001_create_posts_and_comments.up.sql")
	require.NoError(t, err)
	ddl := string(up)

	assert.Equal(t, 2, strings.Count(ddl, "id BIGSERIAL PRIMARY KEY"))
	assert.Contains(t, ddl, "post_id BIGINT NOT NULL")
	assert.NotRegexp(t, `(?i)\b(SERIAL|INTEGER)\b`, ddl)
}

func TestDifference(t *testing.T) {
	assert.Equal(t, []string{"b", "d"}, difference([]string{"a", "b", "c", "d"}, []string{"c", "a", "z"}))
	assert.Nil(t, difference([]string{"a"}, []string{"a"}))
}
