package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/looptrace/internal/fixtures"
	"github.com/matzehuels/looptrace/pkg/grid"
	"github.com/matzehuels/looptrace/pkg/loop"
)

func TestToDOT(t *testing.T) {
	g, err := grid.ParseString(fixtures.Square)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	l, err := loop.Walk(g)
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	dot := ToDOT(g, l, Options{})

	if !strings.HasPrefix(dot, "graph loop {\n") {
		t.Errorf("ToDOT() should start with an undirected graph header:\n%s", dot)
	}
	if got := strings.Count(dot, " -- "); got != l.Length() {
		t.Errorf("edge count = %d, want %d", got, l.Length())
	}
	for _, want := range []string{
		`"1,1" [label="S", pos="0.50,-0.50!", fillcolor="#5fafaf"];`,
		`"3,3" [label="╯", pos="1.50,-1.50!"];`,
		`"1,2" -- "1,1";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"0,0"`) {
		t.Error("ToDOT() should only include loop tiles")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g, err := grid.ParseString(fixtures.Square)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	l, err := loop.Walk(g)
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	dot := ToDOT(g, l, Options{Detailed: true, Spacing: 1})
	if !strings.Contains(dot, `"3,3" [label="╯\n4", pos="3.00,-3.00!"];`) {
		t.Errorf("ToDOT() should label the farthest tile with distance 4:\n%s", dot)
	}
}
