package loop_test

import (
	"testing"

	"github.com/matzehuels/looptrace/internal/fixtures"
	"github.com/matzehuels/looptrace/pkg/errors"
	"github.com/matzehuels/looptrace/pkg/grid"
	"github.com/matzehuels/looptrace/pkg/loop"
)

func mustParse(t *testing.T, s string) *grid.Grid {
	t.Helper()
	g, err := grid.ParseString(s)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	return g
}

func TestWalk_Fixtures(t *testing.T) {
	for _, f := range fixtures.All {
		t.Run(f.Name, func(t *testing.T) {
			g := mustParse(t, f.Input)
			l, err := loop.Walk(g)
			if err != nil {
				t.Fatalf("Walk() error: %v", err)
			}

			if got := l.HalfLength(); got != f.HalfLength {
				t.Errorf("HalfLength() = %d, want %d", got, f.HalfLength)
			}
			if l.Length()%2 != 0 {
				t.Errorf("Length() = %d, want an even number", l.Length())
			}
			if got := g.Labeled(); got != l.Length() {
				t.Errorf("Labeled() = %d, want %d", got, l.Length())
			}
			for i, c := range l.Path {
				if d, ok := g.Distance(c); !ok || d != i {
					t.Errorf("Distance(%v) = %d, %v; want %d, true", c, d, ok, i)
				}
			}
		})
	}
}

func TestWalk_PathIsConnected(t *testing.T) {
	g := mustParse(t, fixtures.Squeezed)
	l, err := loop.Walk(g)
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	for i, c := range l.Path {
		next := l.Path[(i+1)%len(l.Path)]
		found := false
		for _, d := range g.Effective(c).Connections() {
			if n, ok := g.Neighbor(c, d); ok && n == next {
				found = true
			}
		}
		if !found {
			t.Fatalf("Path[%d] %v does not connect to %v", i, c, next)
		}
	}
}

func TestWalk_IgnoresJunk(t *testing.T) {
	clean := mustParse(t, fixtures.Square)
	junk := mustParse(t, fixtures.SquareJunk)

	lc, err := loop.Walk(clean)
	if err != nil {
		t.Fatalf("Walk(clean) error: %v", err)
	}
	lj, err := loop.Walk(junk)
	if err != nil {
		t.Fatalf("Walk(junk) error: %v", err)
	}

	if len(lc.Path) != len(lj.Path) {
		t.Fatalf("path lengths differ: %d vs %d", len(lc.Path), len(lj.Path))
	}
	for i := range lc.Path {
		if lc.Path[i] != lj.Path[i] {
			t.Errorf("Path[%d] = %v, want %v", i, lj.Path[i], lc.Path[i])
		}
	}
	for _, c := range []grid.Coordinate{{X: 0, Y: 0}, {X: 4, Y: 4}, {X: 2, Y: 2}, {X: 4, Y: 1}} {
		if junk.OnLoop(c) {
			t.Errorf("junk tile %v labeled as loop", c)
		}
	}
}

func TestWalk_FirstStep(t *testing.T) {
	g := mustParse(t, fixtures.Square)
	l, err := loop.Walk(g)
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	// S resolves to F; east comes before south in direction order.
	if want := (grid.Coordinate{X: 2, Y: 1}); l.Path[1] != want {
		t.Errorf("Path[1] = %v, want %v", l.Path[1], want)
	}
	if want := (grid.Coordinate{X: 3, Y: 3}); l.Farthest() != want {
		t.Errorf("Farthest() = %v, want %v", l.Farthest(), want)
	}
}

func TestWalk_Idempotent(t *testing.T) {
	g := mustParse(t, fixtures.Debris)
	first, err := loop.Walk(g)
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	second, err := loop.Walk(g)
	if err != nil {
		t.Fatalf("second Walk() error: %v", err)
	}
	if first.Length() != second.Length() {
		t.Errorf("Length() = %d then %d", first.Length(), second.Length())
	}
	if g.Labeled() != second.Length() {
		t.Errorf("Labeled() = %d, want %d", g.Labeled(), second.Length())
	}
}

func TestResolveStart(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  grid.TileKind
	}{
		{"square", fixtures.Square, grid.SouthEast},
		{"winding", fixtures.Winding, grid.SouthEast},
		{"debris", fixtures.Debris, grid.SouthWest},
		{"vertical", ".|.\n.S.\n.|.\n", grid.Vertical},
		{"horizontal", "...\n-S-\n...\n", grid.Horizontal},
		{"north-west", ".|.\n-S.\n...\n", grid.NorthWest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loop.ResolveStart(mustParse(t, tt.input))
			if err != nil {
				t.Fatalf("ResolveStart() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveStart() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalk_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"broken", fixtures.Broken, errors.ErrCodeMalformedLoop},
		{"forked", fixtures.Forked, errors.ErrCodeInvalidStart},
		{"dead end", fixtures.DeadEnd, errors.ErrCodeInvalidStart},
		{"isolated", "...\n.S.\n...\n", errors.ErrCodeInvalidStart},
		{"off grid", "S-\n|.\n", errors.ErrCodeMalformedLoop},
		{"open u", "S-7\n|.|\n|..\n", errors.ErrCodeMalformedLoop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, tt.input)
			_, err := loop.Walk(g)
			if err == nil {
				t.Fatal("Walk() error = nil, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Walk() error = %v, want code %s", err, tt.code)
			}
		})
	}
}
