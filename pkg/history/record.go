package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/looptrace/pkg/grid"
)

// Record is one solved grid.
type Record struct {
	ID         string          `json:"id" bson:"_id"`
	InputHash  string          `json:"input_hash" bson:"input_hash"`
	Source     string          `json:"source,omitempty" bson:"source,omitempty"`
	Width      int             `json:"width" bson:"width"`
	Height     int             `json:"height" bson:"height"`
	LoopLength int             `json:"loop_length" bson:"loop_length"`
	HalfLength int             `json:"half_length" bson:"half_length"`
	Interior   int             `json:"interior" bson:"interior"`
	Start      grid.Coordinate `json:"start" bson:"start"`
	StartKind  string          `json:"start_kind" bson:"start_kind"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
}

// NewID returns a fresh record ID.
func NewID() string {
	return uuid.NewString()
}

// Store persists records.
type Store interface {
	// Save stores rec. An empty ID is filled with [NewID] and a zero
	// CreatedAt with the current time.
	Save(ctx context.Context, rec *Record) error

	// Get returns the record with the given ID, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	// A limit of zero or less means [DefaultListLimit].
	List(ctx context.Context, limit int) ([]Record, error)

	// Close releases the store.
	Close() error
}

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 20

// prepare fills in the ID and timestamp of a record about to be saved.
func prepare(rec *Record) {
	if rec.ID == "" {
		rec.ID = NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
