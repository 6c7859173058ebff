package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/looptrace/pkg/errors"
	"github.com/matzehuels/looptrace/pkg/grid"
)

func openTestSQLite(t *testing.T) *SQLStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "sub", "history.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sample(hash string, created time.Time) *Record {
	return &Record{
		InputHash:  hash,
		Source:     "square.txt",
		Width:      5,
		Height:     5,
		LoopLength: 8,
		HalfLength: 4,
		Interior:   1,
		Start:      grid.Coordinate{X: 1, Y: 1},
		StartKind:  "south-east",
		CreatedAt:  created,
	}
}

func TestSQLStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	created := time.Date(2024, 12, 10, 6, 0, 0, 0, time.UTC)
	rec := sample("abc", created)
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Save() should assign an ID")
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
	got.CreatedAt = rec.CreatedAt
	if *got != *rec {
		t.Errorf("Get() = %+v, want %+v", *got, *rec)
	}
}

func TestSQLStore_GetMissing(t *testing.T) {
	s := openTestSQLite(t)
	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestSQLStore_List(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	base := time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)
	for i, h := range []string{"first", "second", "third"} {
		if err := s.Save(ctx, sample(h, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Save(%s) error: %v", h, err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d records, want 3", len(all))
	}
	for i, want := range []string{"third", "second", "first"} {
		if all[i].InputHash != want {
			t.Errorf("List()[%d].InputHash = %s, want %s", i, all[i].InputHash, want)
		}
	}

	two, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(2) error: %v", err)
	}
	if len(two) != 2 || two[0].InputHash != "third" {
		t.Errorf("List(2) = %+v, want the two newest", two)
	}
}

func TestSQLStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	rec := sample("abc", time.Time{})
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s.Close()
	if _, err := s.Get(ctx, rec.ID); err != nil {
		t.Errorf("record should survive reopen: %v", err)
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	var s NullStore

	rec := sample("abc", time.Time{})
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if rec.ID == "" || rec.CreatedAt.IsZero() {
		t.Error("Save() should fill ID and CreatedAt")
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get() error = %v, want NOT_FOUND", err)
	}
	if recs, err := s.List(ctx, 10); err != nil || len(recs) != 0 {
		t.Errorf("List() = %v, %v; want empty", recs, err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"unknown backend", Options{Backend: "mysql"}, errors.ErrCodeInvalidConfig},
		{"postgres without dsn", Options{Backend: BackendPostgres}, errors.ErrCodeInvalidConfig},
		{"sqlite without path", Options{Backend: BackendSQLite}, errors.ErrCodeInvalidConfig},
		{"mongo without uri", Options{Backend: BackendMongo, Database: "looptrace"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(ctx, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Open() error = %v, want %s", err, tt.code)
			}
		})
	}

	for _, backend := range []string{"", BackendNone} {
		s, err := Open(ctx, Options{Backend: backend})
		if err != nil {
			t.Fatalf("Open(%q) error: %v", backend, err)
		}
		if _, ok := s.(NullStore); !ok {
			t.Errorf("Open(%q) = %T, want NullStore", backend, s)
		}
	}

	s, err := Open(ctx, Options{Backend: BackendSQLite, Path: filepath.Join(t.TempDir(), "h.db")})
	if err != nil {
		t.Fatalf("Open(sqlite) error: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLStore); !ok {
		t.Errorf("Open(sqlite) = %T, want *SQLStore", s)
	}
}

func TestRebind(t *testing.T) {
	query := "SELECT id FROM records WHERE id = ? AND source = ? LIMIT ?"

	if got := rebind(sqliteDialect{}, query); got != query {
		t.Errorf("sqlite rebind = %q, want unchanged", got)
	}
	want := "SELECT id FROM records WHERE id = $1 AND source = $2 LIMIT $3"
	if got := rebind(postgresDialect{}, query); got != want {
		t.Errorf("postgres rebind = %q, want %q", got, want)
	}
}
