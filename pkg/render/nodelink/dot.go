package nodelink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/looptrace/pkg/grid"
	"github.com/matzehuels/looptrace/pkg/loop"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the step distance to each node label.
	// When false, only the tile rune is shown.
	Detailed bool

	// Spacing is the distance between neighboring tiles in inches.
	// Zero means 0.5.
	Spacing float64
}

// ToDOT converts a walked loop to Graphviz DOT source.
// Node IDs are "x,y"; positions are pinned so the drawing keeps the grid shape.
func ToDOT(g *grid.Grid, l *loop.Loop, opts Options) string {
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = 0.5
	}

	var buf bytes.Buffer
	buf.WriteString("graph loop {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, fixedsize=true, width=0.35, fontsize=10, style=filled, fillcolor=white];\n")
	buf.WriteString("\n")

	for _, c := range l.Path {
		attrs := fmt.Sprintf("label=%q, pos=\"%.2f,%.2f!\"", label(g, c, opts.Detailed),
			float64(c.X)*spacing, -float64(c.Y)*spacing)
		if c == l.Start {
			attrs += ", fillcolor=\"#5fafaf\""
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(c), attrs)
	}

	buf.WriteString("\n")
	for i, c := range l.Path {
		next := l.Path[(i+1)%len(l.Path)]
		fmt.Fprintf(&buf, "  %q -- %q;\n", nodeID(c), nodeID(next))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(c grid.Coordinate) string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

func label(g *grid.Grid, c grid.Coordinate, detailed bool) string {
	r := string(g.Kind(c).BoxDrawing())
	if !detailed {
		return r
	}
	d, _ := g.Distance(c)
	return fmt.Sprintf("%s\n%d", r, d)
}

// RenderSVG renders DOT source to SVG with the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
