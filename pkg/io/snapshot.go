package io

import (
	"github.com/matzehuels/looptrace/pkg/grid"
)

// Snapshot is the JSON shape of a walked grid.
type Snapshot struct {
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Rows      []string          `json:"rows"`
	Start     grid.Coordinate   `json:"start"`
	StartKind string            `json:"start_kind"`
	Loop      []grid.Coordinate `json:"loop"`
}

// NewSnapshot captures g and the walk order in path.
func NewSnapshot(g *grid.Grid, path []grid.Coordinate) Snapshot {
	return Snapshot{
		Width:     g.Width(),
		Height:    g.Height(),
		Rows:      g.Rows(),
		Start:     g.Start(),
		StartKind: g.StartKind().String(),
		Loop:      append([]grid.Coordinate(nil), path...),
	}
}
