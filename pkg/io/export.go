package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/looptrace/pkg/grid"
	"github.com/matzehuels/looptrace/pkg/loop"
)

// WriteJSON encodes a walked grid and its loop as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(w io.Writer, g *grid.Grid, l *loop.Loop) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSnapshot(g, l.Path)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
