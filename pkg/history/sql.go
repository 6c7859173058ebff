package history

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/matzehuels/looptrace/pkg/errors"
)

// SQLStore keeps records in a SQL database. [OpenSQLite] and [OpenPostgres]
// create one for their dialect.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// openSQL connects with the dialect's driver, runs its init statements and
// applies the schema.
func openSQL(ctx context.Context, d dialect, dsn string) (*SQLStore, error) {
	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect history database: %w", err)
	}

	for _, stmt := range d.initStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", stmt, err)
		}
	}

	s := &SQLStore{db: db, dialect: d}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history database: %w", err)
	}
	return s, nil
}

func (s *SQLStore) bind(query string) string {
	return rebind(s.dialect, query)
}

func (s *SQLStore) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			input_hash TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			loop_length INTEGER NOT NULL,
			half_length INTEGER NOT NULL,
			interior INTEGER NOT NULL,
			start_x INTEGER NOT NULL,
			start_y INTEGER NOT NULL,
			start_kind TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_created_at ON records(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_records_input_hash ON records(input_hash)`,
	}
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Save inserts rec.
func (s *SQLStore) Save(ctx context.Context, rec *Record) error {
	prepare(rec)
	_, err := s.db.ExecContext(ctx, s.bind(`INSERT INTO records
		(id, input_hash, source, width, height, loop_length, half_length, interior, start_x, start_y, start_kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		rec.ID, rec.InputHash, rec.Source, rec.Width, rec.Height,
		rec.LoopLength, rec.HalfLength, rec.Interior,
		rec.Start.X, rec.Start.Y, rec.StartKind, rec.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert record %s: %w", rec.ID, err)
	}
	return nil
}

const selectColumns = `SELECT id, input_hash, source, width, height, loop_length, half_length, interior,
	start_x, start_y, start_kind, created_at FROM records`

// Get returns the record with the given ID.
func (s *SQLStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, s.bind(selectColumns+` WHERE id = ?`), id)
	rec, err := scanRecord(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.New(errors.ErrCodeNotFound, "record %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}
	return rec, nil
}

// List returns the newest records first.
func (s *SQLStore) List(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(selectColumns+` ORDER BY created_at DESC, id LIMIT ?`), listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		rec     Record
		created int64
	)
	err := sc.Scan(&rec.ID, &rec.InputHash, &rec.Source, &rec.Width, &rec.Height,
		&rec.LoopLength, &rec.HalfLength, &rec.Interior,
		&rec.Start.X, &rec.Start.Y, &rec.StartKind, &created)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = time.Unix(0, created).UTC()
	return &rec, nil
}

var _ Store = (*SQLStore)(nil)
