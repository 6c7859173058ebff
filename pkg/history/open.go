package history

import (
	"context"

	"github.com/matzehuels/looptrace/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendNone     = "none"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Options selects and configures a history backend.
type Options struct {
	Backend string

	// Path is the SQLite database file.
	Path string

	// DSN is the PostgreSQL connection string.
	DSN string

	// URI, Database and Collection address the MongoDB collection.
	URI        string
	Database   string
	Collection string
}

// Open returns the store for opts.Backend. An empty backend means none.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendNone:
		return NullStore{}, nil
	case BackendSQLite:
		if opts.Path == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "sqlite history needs a path")
		}
		return OpenSQLite(ctx, opts.Path)
	case BackendPostgres:
		if opts.DSN == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "postgres history needs a dsn")
		}
		return OpenPostgres(ctx, opts.DSN)
	case BackendMongo:
		if opts.URI == "" || opts.Database == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo history needs a uri and database")
		}
		return OpenMongo(ctx, opts.URI, opts.Database, opts.Collection)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown history backend %q", opts.Backend)
	}
}
