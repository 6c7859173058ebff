package interior

import "github.com/matzehuels/looptrace/pkg/grid"

// Count returns the number of cells strictly enclosed by the loop of g.
func Count(g *grid.Grid) int {
	n := 0
	for y := 0; y < g.Height(); y++ {
		scanRow(g, y, func(grid.Coordinate) { n++ })
	}
	return n
}

// Cells returns the enclosed cells in row-major order.
func Cells(g *grid.Grid) []grid.Coordinate {
	var cells []grid.Coordinate
	for y := 0; y < g.Height(); y++ {
		scanRow(g, y, func(c grid.Coordinate) { cells = append(cells, c) })
	}
	return cells
}

// Row returns the number of enclosed cells in row y.
func Row(g *grid.Grid, y int) int {
	n := 0
	scanRow(g, y, func(grid.Coordinate) { n++ })
	return n
}

// boundary returns the kind of c as seen by the scan: Empty for tiles off
// the loop, the resolved kind for Start.
func boundary(g *grid.Grid, c grid.Coordinate) grid.TileKind {
	if !g.OnLoop(c) {
		return grid.Empty
	}
	return g.Effective(c)
}

func scanRow(g *grid.Grid, y int, inside func(grid.Coordinate)) {
	crossings := 0
	prev := grid.Empty
	for x := 0; x < g.Width(); x++ {
		c := grid.Coordinate{X: x, Y: y}
		cur := boundary(g, c)
		switch cur {
		case grid.Vertical:
			crossings++
		case grid.Horizontal:
			cur = prev
		case grid.NorthWest:
			if prev == grid.SouthEast {
				crossings++
			}
		case grid.SouthWest:
			if prev == grid.NorthEast {
				crossings++
			}
		case grid.Empty:
			if crossings%2 == 1 {
				inside(c)
			}
		}
		prev = cur
	}
}
