package interior_test

import (
	"testing"

	"github.com/matzehuels/looptrace/internal/fixtures"
	"github.com/matzehuels/looptrace/pkg/grid"
	"github.com/matzehuels/looptrace/pkg/interior"
	"github.com/matzehuels/looptrace/pkg/loop"
)

func walked(t *testing.T, s string) *grid.Grid {
	t.Helper()
	g, err := grid.ParseString(s)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	if _, err := loop.Walk(g); err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	return g
}

func TestCount_Fixtures(t *testing.T) {
	for _, f := range fixtures.All {
		t.Run(f.Name, func(t *testing.T) {
			g := walked(t, f.Input)
			if got := interior.Count(g); got != f.Interior {
				t.Errorf("Count() = %d, want %d", got, f.Interior)
			}
			if got := len(interior.Cells(g)); got != f.Interior {
				t.Errorf("len(Cells()) = %d, want %d", got, f.Interior)
			}
		})
	}
}

func TestCount_Idempotent(t *testing.T) {
	g := walked(t, fixtures.Squeezed)
	first := interior.Count(g)
	second := interior.Count(g)
	if first != second {
		t.Errorf("Count() = %d then %d", first, second)
	}
	if g.Labeled() != 140 {
		t.Errorf("Count() must not change labels: Labeled() = %d", g.Labeled())
	}
}

func TestCount_JunkMatchesClean(t *testing.T) {
	clean := walked(t, fixtures.Square)
	junk := walked(t, fixtures.SquareJunk)
	if a, b := interior.Count(clean), interior.Count(junk); a != b {
		t.Errorf("Count(clean) = %d, Count(junk) = %d", a, b)
	}
}

func TestCount_BorderHugging(t *testing.T) {
	for _, s := range []string{fixtures.Hug, "S7\nLJ\n"} {
		if got := interior.Count(walked(t, s)); got != 0 {
			t.Errorf("Count(%q) = %d, want 0", s, got)
		}
	}
}

func TestCount_Unwalked(t *testing.T) {
	g, err := grid.ParseString(fixtures.Nested)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	if got := interior.Count(g); got != 0 {
		t.Errorf("Count(unwalked) = %d, want 0", got)
	}
}

func TestCells_Square(t *testing.T) {
	cells := interior.Cells(walked(t, fixtures.Square))
	if len(cells) != 1 || cells[0] != (grid.Coordinate{X: 2, Y: 2}) {
		t.Errorf("Cells() = %v, want [{2 2}]", cells)
	}
}

func TestCells_Nested(t *testing.T) {
	cells := interior.Cells(walked(t, fixtures.Nested))
	want := []grid.Coordinate{{X: 2, Y: 6}, {X: 3, Y: 6}, {X: 7, Y: 6}, {X: 8, Y: 6}}
	if len(cells) != len(want) {
		t.Fatalf("Cells() = %v, want %v", cells, want)
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("Cells()[%d] = %v, want %v", i, cells[i], want[i])
		}
	}
}

// TestCount_CornerPairs checks single rows where naive pipe counting goes wrong.
func TestCount_CornerPairs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		row   int
		want  int
		total int
	}{
		{
			name:  "L-7 crosses",
			input: "S----7\n|....|\nL-7..|\n..|..|\n..L--J\n",
			row:   2,
			want:  2,
			total: 8,
		},
		{
			name:  "F-J crosses",
			input: "..F--7\n..|..|\nF-J..|\n|....|\nS----J\n",
			row:   2,
			want:  2,
			total: 8,
		},
		{
			name:  "F7 turns back",
			input: "S----7\n|.F7.|\n|.|L-J\n|.|...\nL-J...\n",
			row:   1,
			want:  2,
			total: 4,
		},
		{
			name:  "L-J turns back",
			input: "S----7\n|.F7.|\n|.|L-J\n|.|...\nL-J...\n",
			row:   2,
			want:  1,
			total: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := walked(t, tt.input)
			if got := interior.Row(g, tt.row); got != tt.want {
				t.Errorf("Row(%d) = %d, want %d", tt.row, got, tt.want)
			}
			if got := interior.Count(g); got != tt.total {
				t.Errorf("Count() = %d, want %d", got, tt.total)
			}
		})
	}
}

func BenchmarkCount(b *testing.B) {
	g, err := grid.ParseString(fixtures.Debris)
	if err != nil {
		b.Fatalf("ParseString() error: %v", err)
	}
	if _, err := loop.Walk(g); err != nil {
		b.Fatalf("Walk() error: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = interior.Count(g)
	}
}
