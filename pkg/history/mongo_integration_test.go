//go:build integration

package history

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/looptrace/pkg/errors"
)

// Run with: LOOPTRACE_TEST_MONGO_URI=mongodb://localhost:27017 go test -tags integration ./pkg/history
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("LOOPTRACE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("LOOPTRACE_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := OpenMongo(ctx, uri, "looptrace_test", "records_"+NewID()[:8])
	if err != nil {
		t.Fatalf("OpenMongo() error: %v", err)
	}
	t.Cleanup(func() {
		_ = s.coll.Drop(context.Background())
		s.Close()
	})

	base := time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)
	var last *Record
	for i, h := range []string{"first", "second"} {
		last = sample(h, base.Add(time.Duration(i)*time.Hour))
		if err := s.Save(ctx, last); err != nil {
			t.Fatalf("Save(%s) error: %v", h, err)
		}
	}

	got, err := s.Get(ctx, last.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.InputHash != "second" || !got.CreatedAt.Equal(last.CreatedAt) {
		t.Errorf("Get() = %+v, want %+v", got, last)
	}

	recs, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(recs) != 2 || recs[0].InputHash != "second" {
		t.Errorf("List() = %+v, want newest first", recs)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v, want NOT_FOUND", err)
	}
}
