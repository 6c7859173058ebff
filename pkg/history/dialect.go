package history

import (
	"fmt"
	"strings"
)

// dialect abstracts the SQL differences between SQLite and PostgreSQL.
type dialect interface {
	// driverName is the database/sql driver registered for the dialect.
	driverName() string

	// placeholder returns the parameter marker for the 1-indexed position.
	placeholder(position int) string

	// initStatements run once after the connection opens.
	initStatements() []string
}

type sqliteDialect struct{}

func (sqliteDialect) driverName() string { return "sqlite" }
func (sqliteDialect) placeholder(int) string { return "?" }
func (sqliteDialect) initStatements() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

type postgresDialect struct{}

func (postgresDialect) driverName() string { return "postgres" }
func (postgresDialect) placeholder(position int) string { return fmt.Sprintf("$%d", position) }
func (postgresDialect) initStatements() []string { return nil }

// rebind converts the ? placeholders in query to the dialect's markers.
func rebind(d dialect, query string) string {
	if _, ok := d.(sqliteDialect); ok {
		return query
	}
	var b strings.Builder
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			b.WriteString(d.placeholder(position))
			position++
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
