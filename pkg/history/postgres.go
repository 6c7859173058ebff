package history

import (
	"context"

	_ "github.com/lib/pq"
)

// OpenPostgres connects to the PostgreSQL database named by dsn, either a
// postgres:// URL or a key=value connection string, and applies the schema.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	return openSQL(ctx, postgresDialect{}, dsn)
}
