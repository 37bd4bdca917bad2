package database

import "embed"

// Table names
const (
	PostsTableName    = "posts"
	CommentsTableName = "comments"
)

// Table declares a relation and the columns the service relies on
type Table struct {
	Name    string
	Columns []string
}

var (
	PostsTable = Table{
		Name:    PostsTableName,
		Columns: []string{"id", "body"},
	}

	CommentsTable = Table{
		Name:    CommentsTableName,
		Columns: []string{"id", "body", "post_id"},
	}
)

// Schema lists the declared tables in creation order.
// comments.post_id references posts.id, so posts comes first.
var Schema = []Table{PostsTable, CommentsTable}

// TableNames returns the declared table names in creation order
func TableNames() []string {
	names := make([]string, len(Schema))
	for i, t := range Schema {
		names[i] = t.Name
	}
	return names
}

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"
