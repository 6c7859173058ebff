// Package grid models a rectangular field of pipe tiles.
//
// # Overview
//
// A grid is loaded once from text, one row per line, using the symbols:
//
//	.  Empty
//	|  Vertical    (north, south)
//	-  Horizontal  (east, west)
//	L  NorthEast
//	J  NorthWest
//	F  SouthEast
//	7  SouthWest
//	S  Start       (all four directions are candidates)
//
// [Parse] validates the input: every row must have the same length, every rune
// must be one of the eight symbols, and exactly one S must be present.
//
// # Coordinates
//
// [Coordinate] values are (X, Y) pairs with X growing east and Y growing
// south. [Grid.Neighbor] is the only way to step between tiles; it reports
// false instead of returning a coordinate outside the grid.
//
// # Loop Labels
//
// Each tile carries an optional step distance. Grids come out of the parser
// with no distances set; the loop package assigns them while walking and
// records the kind Start actually behaves as. The grid is never resized.
package grid
