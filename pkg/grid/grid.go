package grid

// noDistance marks a tile the walk has not reached.
const noDistance = -1

// Grid is a rectangular field of tiles with optional loop distances.
// Tiles are stored row-major: index = y*width + x.
type Grid struct {
	width, height int
	tiles         []TileKind
	dist          []int
	start         Coordinate
	startKind     TileKind
}

// New builds a grid from row-major tiles. It does not validate the Start
// invariant; use [Parse] for untrusted input.
func New(width, height int, tiles []TileKind, start Coordinate) *Grid {
	g := &Grid{
		width:     width,
		height:    height,
		tiles:     tiles,
		dist:      make([]int, len(tiles)),
		start:     start,
		startKind: Start,
	}
	g.ResetDistances()
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Start returns the coordinate of the S tile.
func (g *Grid) Start() Coordinate { return g.start }

// StartKind returns the kind Start has been resolved to, or Start if the
// grid has not been walked.
func (g *Grid) StartKind() TileKind { return g.startKind }

// SetStartKind records the pipe kind the Start tile behaves as.
func (g *Grid) SetStartKind(k TileKind) { g.startKind = k }

// InBounds reports whether c lies within the grid.
func (g *Grid) InBounds(c Coordinate) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Neighbor returns the coordinate one step from c in direction d.
// It reports false when the step leaves the grid.
func (g *Grid) Neighbor(c Coordinate, d Direction) (Coordinate, bool) {
	n := c.Step(d)
	if !g.InBounds(n) {
		return Coordinate{}, false
	}
	return n, true
}

// Kind returns the tile kind as read from the input. It returns Empty for
// coordinates outside the grid.
func (g *Grid) Kind(c Coordinate) TileKind {
	if !g.InBounds(c) {
		return Empty
	}
	return g.tiles[g.index(c)]
}

// Effective returns the kind the tile behaves as: the resolved kind for the
// Start tile, the input kind otherwise.
func (g *Grid) Effective(c Coordinate) TileKind {
	k := g.Kind(c)
	if k == Start {
		return g.startKind
	}
	return k
}

// Distance returns the loop step distance of c and whether one is set.
func (g *Grid) Distance(c Coordinate) (int, bool) {
	if !g.InBounds(c) {
		return 0, false
	}
	d := g.dist[g.index(c)]
	return d, d != noDistance
}

// SetDistance labels c with its step distance from Start.
func (g *Grid) SetDistance(c Coordinate, d int) {
	if g.InBounds(c) {
		g.dist[g.index(c)] = d
	}
}

// OnLoop reports whether c has been labeled by the walk.
func (g *Grid) OnLoop(c Coordinate) bool {
	_, ok := g.Distance(c)
	return ok
}

// Labeled returns the number of tiles with a distance.
func (g *Grid) Labeled() int {
	n := 0
	for _, d := range g.dist {
		if d != noDistance {
			n++
		}
	}
	return n
}

// ResetDistances clears every loop label and the resolved start kind.
func (g *Grid) ResetDistances() {
	for i := range g.dist {
		g.dist[i] = noDistance
	}
	g.startKind = Start
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := *g
	c.tiles = append([]TileKind(nil), g.tiles...)
	c.dist = append([]int(nil), g.dist...)
	return &c
}

// Rows returns the grid as text in input symbols, one string per row.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	buf := make([]rune, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			buf[x] = g.tiles[y*g.width+x].Symbol()
		}
		rows[y] = string(buf)
	}
	return rows
}

func (g *Grid) index(c Coordinate) int {
	return c.Y*g.width + c.X
}
