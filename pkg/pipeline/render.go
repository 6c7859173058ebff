package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/looptrace/pkg/grid"
	snapshot "github.com/matzehuels/looptrace/pkg/io"
	"github.com/matzehuels/looptrace/pkg/loop"
	"github.com/matzehuels/looptrace/pkg/observability"
	"github.com/matzehuels/looptrace/pkg/render"
	"github.com/matzehuels/looptrace/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats from a walked grid.
func Render(ctx context.Context, g *grid.Grid, l *loop.Loop, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, g, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, g *grid.Grid, l *loop.Loop, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			data = []byte(render.Text(g))
		case FormatClean:
			data = []byte(render.Text(g, render.WithClean()))
		case FormatInterior:
			data = []byte(render.Text(g, render.WithClean(), render.WithInterior()))
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = nodelink.ToDOT(g, l, nodelink.Options{Detailed: opts.Detailed})
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = nodelink.RenderSVG(ctx, dot)
			}
		case FormatJSON:
			var buf bytes.Buffer
			err = snapshot.WriteJSON(&buf, g, l)
			data = buf.Bytes()
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
