package loop

import (
	"github.com/matzehuels/looptrace/pkg/errors"
	"github.com/matzehuels/looptrace/pkg/grid"
)

// Loop describes the cycle found by [Walk].
type Loop struct {
	// Start is the coordinate of the S tile.
	Start grid.Coordinate
	// StartKind is the pipe kind S was resolved to.
	StartKind grid.TileKind
	// Path lists the loop tiles in walk order; Path[i] has distance i.
	Path []grid.Coordinate
}

// Length returns the number of tiles on the loop.
func (l *Loop) Length() int {
	return len(l.Path)
}

// HalfLength returns the distance to the loop tile farthest from Start.
func (l *Loop) HalfLength() int {
	return l.Length() / 2
}

// Farthest returns the tile HalfLength steps from Start along the walk.
func (l *Loop) Farthest() grid.Coordinate {
	if len(l.Path) == 0 {
		return l.Start
	}
	return l.Path[l.HalfLength()]
}

// StartDirections returns the two directions S connects to.
func StartDirections(g *grid.Grid) ([]grid.Direction, error) {
	s := g.Start()
	var dirs []grid.Direction
	for _, d := range grid.Directions {
		n, ok := g.Neighbor(s, d)
		if !ok {
			continue
		}
		if g.Kind(n).Connects(d.Opposite()) {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) != 2 {
		return dirs, errors.New(errors.ErrCodeInvalidStart,
			"start tile at %v connects to %d neighbors, want 2", s, len(dirs))
	}
	return dirs, nil
}

// ResolveStart returns the pipe kind the start tile stands for.
// It fails with INVALID_START unless exactly two neighbors connect back.
func ResolveStart(g *grid.Grid) (grid.TileKind, error) {
	dirs, err := StartDirections(g)
	if err != nil {
		return grid.Start, err
	}
	k, ok := grid.KindFor(dirs[0], dirs[1])
	if !ok {
		return grid.Start, errors.New(errors.ErrCodeInvalidStart,
			"start tile connects %v and %v", dirs[0], dirs[1])
	}
	return k, nil
}

// Walk labels every loop tile of g with its step distance from Start.
//
// Existing labels are cleared first, so walking a grid twice yields the same
// result. On success the grid's start kind is set to the resolved pipe. Walk
// fails with INVALID_START when S does not connect to exactly two neighbors,
// and with MALFORMED_LOOP when the path leaves the grid, runs into a tile
// that does not connect back, or stops without returning to S.
func Walk(g *grid.Grid) (*Loop, error) {
	g.ResetDistances()

	kind, err := ResolveStart(g)
	if err != nil {
		return nil, err
	}
	g.SetStartKind(kind)

	start := g.Start()
	g.SetDistance(start, 0)
	path := []grid.Coordinate{start}
	cur := start

	for {
		next, ok, err := step(g, cur)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		g.SetDistance(next, len(path))
		path = append(path, next)
		cur = next
	}

	if !closes(g, cur) {
		return nil, errors.New(errors.ErrCodeMalformedLoop,
			"walk stopped at %v after %d tiles without returning to start %v", cur, len(path), start)
	}

	return &Loop{
		Start:     start,
		StartKind: kind,
		Path:      path,
	}, nil
}

// step returns the first unvisited neighbor cur connects to.
func step(g *grid.Grid, cur grid.Coordinate) (grid.Coordinate, bool, error) {
	for _, d := range g.Effective(cur).Connections() {
		n, ok := g.Neighbor(cur, d)
		if !ok {
			return grid.Coordinate{}, false, errors.New(errors.ErrCodeMalformedLoop,
				"tile %v leads %v off the grid", cur, d)
		}
		if g.OnLoop(n) {
			continue
		}
		if !g.Effective(n).Connects(d.Opposite()) {
			return grid.Coordinate{}, false, errors.New(errors.ErrCodeMalformedLoop,
				"tile %v leads %v into %v tile %v that does not connect back", cur, d, g.Kind(n), n)
		}
		return n, true, nil
	}
	return grid.Coordinate{}, false, nil
}

// closes reports whether the last tile of the walk connects to Start.
func closes(g *grid.Grid, last grid.Coordinate) bool {
	start := g.Start()
	if last == start {
		return false
	}
	for _, d := range g.Effective(last).Connections() {
		if n, ok := g.Neighbor(last, d); ok && n == start {
			return g.Effective(start).Connects(d.Opposite())
		}
	}
	return false
}
