package render

import (
	"strings"

	"github.com/matzehuels/looptrace/pkg/grid"
	"github.com/matzehuels/looptrace/pkg/interior"
)

// TextOption configures text rendering via [Text].
type TextOption func(*textRenderer)

type textRenderer struct {
	clean    bool
	interior bool
	symbols  bool
}

// WithClean draws tiles that are not on the loop as empty ground.
func WithClean() TextOption { return func(r *textRenderer) { r.clean = true } }

// WithInterior marks cells enclosed by the loop with I. The grid must have
// been walked.
func WithInterior() TextOption { return func(r *textRenderer) { r.interior = true } }

// WithSymbols uses the input symbols (| - L J F 7) instead of box-drawing runes.
func WithSymbols() TextOption { return func(r *textRenderer) { r.symbols = true } }

// InteriorMark is the rune drawn for enclosed cells.
const InteriorMark = 'I'

// Text renders g as text, one newline-terminated line per row.
func Text(g *grid.Grid, opts ...TextOption) string {
	r := textRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	inside := map[grid.Coordinate]bool{}
	if r.interior {
		for _, c := range interior.Cells(g) {
			inside[c] = true
		}
	}

	var b strings.Builder
	b.Grow((g.Width() + 1) * g.Height() * 3)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := grid.Coordinate{X: x, Y: y}
			b.WriteRune(r.cell(g, c, inside[c]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (r textRenderer) cell(g *grid.Grid, c grid.Coordinate, inside bool) rune {
	if inside {
		return InteriorMark
	}
	k := g.Kind(c)
	if r.clean && !g.OnLoop(c) {
		k = grid.Empty
	}
	if r.symbols {
		return k.Symbol()
	}
	return k.BoxDrawing()
}
