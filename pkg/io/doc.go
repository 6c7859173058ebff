// Package io provides JSON import and export for walked grids.
//
// # Overview
//
// A snapshot captures a grid together with the loop found on it, so the
// interior can be classified again, or the loop re-rendered, without
// repeating the walk. The format is:
//
//	{
//	  "width": 5,
//	  "height": 5,
//	  "rows": [".....", ".S-7.", ".|.|.", ".L-J.", "....."],
//	  "start": {"x": 1, "y": 1},
//	  "start_kind": "south-east",
//	  "loop": [{"x": 1, "y": 1}, {"x": 2, "y": 1}, ...]
//	}
//
// Rows use the input symbols. The loop lists tiles in walk order; the tile
// at index i has step distance i.
//
// # Import
//
// [ReadJSON] parses the rows with the regular grid parser and walks the loop
// again, which restores the resolved start kind and every distance label. A
// snapshot whose loop is not the one its rows describe is rejected with
// MALFORMED_LOOP, and one whose start kind disagrees with S's neighbors with
// INVALID_START. [ReadWalked] also returns the loop.
//
// # Export
//
// [WriteJSON] writes the snapshot of a walked grid to any io.Writer.
// [ImportJSON] reads one from a file path.
package io
