package grid

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/looptrace/pkg/errors"
)

// Parse reads a grid from r, one row per line.
//
// Trailing blank lines are dropped and "\r\n" line endings are accepted.
// Parse returns an *errors.Error with code:
//   - MALFORMED_GRID when there are no rows or row lengths differ
//   - MALFORMED_TILE when a rune is not one of ". | - L J F 7 S"
//   - INVALID_START when the grid holds zero or several S tiles
func Parse(r io.Reader) (*Grid, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read grid")
	}
	return ParseLines(lines)
}

// ParseString parses a grid held in a string.
func ParseString(s string) (*Grid, error) {
	return Parse(strings.NewReader(s))
}

// ParseLines builds a grid from pre-split rows.
func ParseLines(lines []string) (*Grid, error) {
	for len(lines) > 0 && strings.TrimRight(lines[len(lines)-1], "\r") == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedGrid, "grid has no rows")
	}

	rows := make([][]rune, len(lines))
	for y, line := range lines {
		rows[y] = []rune(strings.TrimSuffix(line, "\r"))
	}
	width := len(rows[0])
	if width == 0 {
		return nil, errors.New(errors.ErrCodeMalformedGrid, "grid has no columns")
	}

	tiles := make([]TileKind, 0, width*len(rows))
	var starts []Coordinate
	for y, row := range rows {
		if len(row) != width {
			return nil, errors.New(errors.ErrCodeMalformedGrid,
				"row %d has length %d, want %d", y, len(row), width)
		}
		for x, r := range row {
			k, ok := KindFromSymbol(r)
			if !ok {
				return nil, errors.New(errors.ErrCodeMalformedTile,
					"row %d, column %d: unknown tile %q", y, x, r)
			}
			if k == Start {
				starts = append(starts, Coordinate{X: x, Y: y})
			}
			tiles = append(tiles, k)
		}
	}

	switch len(starts) {
	case 0:
		return nil, errors.New(errors.ErrCodeInvalidStart, "grid has no start tile")
	case 1:
	default:
		return nil, errors.New(errors.ErrCodeInvalidStart,
			"grid has %d start tiles, first two at %v and %v", len(starts), starts[0], starts[1])
	}

	return New(width, len(rows), tiles, starts[0]), nil
}
