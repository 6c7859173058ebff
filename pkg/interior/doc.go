// Package interior counts the grid cells enclosed by a walked loop.
//
// # Parity Scan
//
// Each row is scanned left to right on its own. A ray coming from the left
// edge is inside the loop after an odd number of net vertical crossings:
//
//   - | is one crossing.
//   - - is transparent; the corner that opened the run stays current.
//   - F followed (through any run of -) by J is one crossing, as is L ... 7.
//     F ... 7 and L ... J turn back to the side they came from and do not count.
//   - Any cell that is not on the loop counts as empty ground, and is
//     interior when the crossing count is odd.
//
// Tiles the walk did not label are treated as empty regardless of their
// symbol, and the start tile takes the kind the walk resolved it to.
//
// The grid must have been walked with loop.Walk first. On an un-walked grid
// every tile is off the loop and the result is zero; callers are responsible
// for the ordering.
package interior
