// Package render draws pipe grids for humans.
//
// # Text
//
// [Text] draws a grid with box-drawing runes, one line per row:
//
//	.....
//	.S─╮.
//	.│.│.
//	.╰─╯.
//	.....
//
// Options adjust the view of a walked grid:
//   - [WithClean] blanks every tile that is not on the loop
//   - [WithInterior] marks enclosed cells with I
//   - [WithSymbols] keeps the input symbols instead of box-drawing runes
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage turns the loop into a Graphviz graph with every
// tile pinned to its grid position, and renders it to SVG.
//
//	dot := nodelink.ToDOT(g, l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
package render
