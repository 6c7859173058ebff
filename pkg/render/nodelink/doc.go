// Package nodelink renders a walked loop as a node-link diagram.
//
// # Overview
//
// Every loop tile becomes a Graphviz node pinned at its grid position, and
// consecutive tiles along the walk are joined by an edge. The start tile is
// drawn filled; with [Options.Detailed] each label also carries the tile's
// step distance.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, l, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Rendering uses the neato engine so the pinned positions are kept.
package nodelink
