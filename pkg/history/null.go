package history

import (
	"context"

	"github.com/matzehuels/looptrace/pkg/errors"
)

// NullStore discards records.
type NullStore struct{}

// Save assigns an ID and timestamp but stores nothing.
func (NullStore) Save(ctx context.Context, rec *Record) error {
	prepare(rec)
	return nil
}

// Get always fails with NOT_FOUND.
func (NullStore) Get(ctx context.Context, id string) (*Record, error) {
	return nil, errors.New(errors.ErrCodeNotFound, "record %s not found", id)
}

// List returns no records.
func (NullStore) List(ctx context.Context, limit int) ([]Record, error) {
	return nil, nil
}

// Close does nothing.
func (NullStore) Close() error { return nil }

var _ Store = NullStore{}
