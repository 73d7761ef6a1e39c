// Package store keeps a history of layout runs.
//
// A [Run] records the input graph, the annealing parameters, and the
// resulting layout under a UUID. Backends:
//   - [MemoryStore]: in-process, for tests and the default server
//   - [FileStore]: one JSON file per run, for the CLI
//   - [MongoStore]: shared history for multi-instance servers
//
// All backends return a NOT_FOUND coded error for unknown ids and an
// INVALID_INPUT error for ids that are not UUIDs.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gridlayout/pkg/anneal"
	errs "github.com/matzehuels/gridlayout/pkg/errors"
	"github.com/matzehuels/gridlayout/pkg/graph"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Run is one persisted layout computation.
type Run struct {
	ID        string        `json:"id" bson:"_id"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Graph     graph.Graph   `json:"graph" bson:"graph"`
	Params    anneal.Params `json:"params" bson:"params"`
	Layout    graph.Layout  `json:"layout" bson:"layout"`
}

// NewRun creates a run with a fresh id.
func NewRun(g graph.Graph, p anneal.Params, l graph.Layout) *Run {
	return &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Graph:     g,
		Params:    p,
		Layout:    l,
	}
}

// Store is the interface for run history backends.
type Store interface {
	// Save inserts or replaces a run. An empty ID or CreatedAt is filled in.
	Save(ctx context.Context, run *Run) error

	// Get returns the run with the given id.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns up to limit runs, newest first.
	List(ctx context.Context, limit int) ([]Run, error)

	// Delete removes a run. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}

// prepare fills in missing identity fields and validates the id.
func prepare(run *Run) error {
	if run == nil {
		return errs.New(errs.ErrCodeInvalidInput, "run is nil")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	return ValidateID(run.ID)
}

// ValidateID rejects ids that are not UUIDs.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid run id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errs.New(errs.ErrCodeNotFound, "run %s not found", id)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
