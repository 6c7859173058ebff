package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/looptrace/pkg/grid"
	"github.com/matzehuels/looptrace/pkg/interior"
	"github.com/matzehuels/looptrace/pkg/loop"
	"github.com/matzehuels/looptrace/pkg/observability"
)

// Parse reads grid text.
func Parse(ctx context.Context, input []byte) (*grid.Grid, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, len(input))
	start := time.Now()

	g, err := grid.Parse(bytes.NewReader(input))
	if err != nil {
		hooks.OnParseComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnParseComplete(ctx, g.Width(), g.Height(), time.Since(start), nil)
	return g, nil
}

// Walk finds and labels the loop on g.
func Walk(ctx context.Context, g *grid.Grid) (*loop.Loop, error) {
	hooks := observability.Pipeline()
	hooks.OnWalkStart(ctx, g.Width(), g.Height())
	start := time.Now()

	l, err := loop.Walk(g)
	if err != nil {
		hooks.OnWalkComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnWalkComplete(ctx, l.Length(), time.Since(start), nil)
	return l, nil
}

// Classify counts the tiles enclosed by the loop on a walked grid.
func Classify(ctx context.Context, g *grid.Grid) int {
	start := time.Now()
	n := interior.Count(g)
	observability.Pipeline().OnClassifyComplete(ctx, n, time.Since(start))
	return n
}
