// Package fixtures holds the reference grids shared by tests across packages.
package fixtures

// Fixture is a reference grid with its known answers.
type Fixture struct {
	Name       string
	Input      string
	HalfLength int
	Interior   int
}

// Square is a 5×5 grid whose loop encloses a single cell.
const Square = `.....
.S-7.
.|.|.
.L-J.
.....
`

// SquareJunk is Square surrounded by pipe debris that is not on the loop.
const SquareJunk = `-L|F7
7S-7|
L|7||
-L-J|
L|-JF
`

// Winding has a loop that takes most of a 5×5 grid.
const Winding = `7-F7-
.FJ|7
SJLL7
|F--J
LJ.LJ
`

// Nested is a double-walled loop with two interior pockets.
const Nested = `...........
.S-------7.
.|F-----7|.
.||.....||.
.||.....||.
.|L-7.F-J|.
.|..|.|..|.
.L--J.L--J.
...........
`

// Squeezed has interior cells reachable only through squeezed corridors.
const Squeezed = `.F----7F7F7F7F-7....
.|F--7||||||||FJ....
.||.FJ||||||||L7....
FJL7L7LJLJ||LJ.L-7..
L--J.L7...LJS7F-7L7.
....F-J..F7FJ|L7L7L7
....L7.F7||L7|.L7L7|
.....|FJLJ|FJ|F7|.LJ
....FJL-7.||.||||...
....L---J.LJ.LJLJ...
`

// Debris is a large loop full of junk pipes.
const Debris = `FF7FSF7F7F7F7F7F---7
L|LJ||||||||||||F--J
FL-7LJLJ||||||LJL-77
F--JF--7||LJLJ7F7FJ-
L---JF-JLJ.||-FJLJJ7
|F|F-JF---7F7-L7L|7|
|FFJF7L7F-JF7|JL---7
7-L-JL7||F7|L7F-7F7|
L.L7LFJ|||||FJL7||LJ
L7JLJL-JLJLJL--JLJ.L
`

// Border is a loop around the edge of the grid enclosing two cells.
const Border = `S--7
|..|
L--J
`

// Hug is a loop running along every border cell; nothing is enclosed.
const Hug = `S-7
L-J
`

// Broken has a loop that runs into empty ground before closing.
const Broken = `.....
.S-7.
.|.|.
.L-..
.....
`

// Forked has a start tile that connects to three neighbors.
const Forked = `.|.
-S-
...
`

// DeadEnd has a start tile that connects to a single neighbor.
const DeadEnd = `.S-
...
`

// All lists every well-formed fixture with its expected answers.
var All = []Fixture{
	{Name: "square", Input: Square, HalfLength: 4, Interior: 1},
	{Name: "square-junk", Input: SquareJunk, HalfLength: 4, Interior: 1},
	{Name: "winding", Input: Winding, HalfLength: 8, Interior: 1},
	{Name: "nested", Input: Nested, HalfLength: 23, Interior: 4},
	{Name: "squeezed", Input: Squeezed, HalfLength: 70, Interior: 8},
	{Name: "debris", Input: Debris, HalfLength: 80, Interior: 10},
	{Name: "border", Input: Border, HalfLength: 5, Interior: 2},
	{Name: "hug", Input: Hug, HalfLength: 3, Interior: 0},
}
