// Package loop walks the single pipe cycle that passes through a grid's
// start tile.
//
// # Resolving Start
//
// The S tile hides its shape. [ResolveStart] checks the four neighbors in
// north, east, south, west order and keeps a direction only when the
// neighbor exists and opens back towards S. Exactly two directions must
// survive; they determine the pipe kind S stands for.
//
// # Walking
//
// [Walk] labels S with distance 0 and then repeatedly steps to the first
// connected neighbor that has no distance yet, labeling it with the next
// step number. Every step must land on a tile that connects back. The walk
// ends when no unvisited neighbor is left, at which point the last tile has
// to connect to S for the cycle to be closed.
//
// Tiles without a distance after the walk are not part of the loop, whatever
// their symbol.
package loop
