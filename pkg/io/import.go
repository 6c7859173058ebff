package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/looptrace/pkg/errors"
	"github.com/matzehuels/looptrace/pkg/grid"
	"github.com/matzehuels/looptrace/pkg/loop"
)

// ReadJSON decodes a snapshot from r and returns the grid with its distance
// labels and resolved start kind restored. See [Snapshot.Walk] for the
// checks applied. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*grid.Grid, error) {
	g, _, err := ReadWalked(r)
	return g, err
}

// ReadWalked is like [ReadJSON] but also returns the loop.
func ReadWalked(r io.Reader) (*grid.Grid, *loop.Loop, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode snapshot")
	}
	return s.Walk()
}

// Walk rebuilds the grid from the snapshot rows and walks it again.
//
// The rows go through the regular parser and the loop walker, so every grid
// error applies. Walk also rejects a snapshot whose recorded dimensions or
// start do not match its rows (MALFORMED_GRID, INVALID_START), whose start
// kind differs from the one S resolves to (INVALID_START), and whose loop is
// not the walked loop in walk order (MALFORMED_LOOP).
func (s Snapshot) Walk() (*grid.Grid, *loop.Loop, error) {
	g, err := grid.ParseLines(s.Rows)
	if err != nil {
		return nil, nil, err
	}
	if g.Width() != s.Width || g.Height() != s.Height {
		return nil, nil, errors.New(errors.ErrCodeMalformedGrid,
			"snapshot is %dx%d but rows are %dx%d", s.Width, s.Height, g.Width(), g.Height())
	}
	if g.Start() != s.Start {
		return nil, nil, errors.New(errors.ErrCodeInvalidStart,
			"snapshot start %v does not match S at %v", s.Start, g.Start())
	}

	kind, ok := grid.KindFromName(s.StartKind)
	if !ok || !kind.IsPipe() {
		return nil, nil, errors.New(errors.ErrCodeInvalidStart, "unknown start kind %q", s.StartKind)
	}

	l, err := loop.Walk(g)
	if err != nil {
		return nil, nil, err
	}
	if l.StartKind != kind {
		return nil, nil, errors.New(errors.ErrCodeInvalidStart,
			"snapshot start kind %s, but S resolves to %s", kind, l.StartKind)
	}
	if !slices.Equal(l.Path, s.Loop) {
		return nil, nil, errors.New(errors.ErrCodeMalformedLoop,
			"snapshot loop of %d tiles does not match the %d-tile loop on its rows", len(s.Loop), l.Length())
	}
	return g, l, nil
}

// ImportJSON reads a snapshot file at path and returns the walked grid and
// its loop.
func ImportJSON(path string) (*grid.Grid, *loop.Loop, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadWalked(f)
}
