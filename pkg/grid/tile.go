package grid

// TileKind is the connector shape of a single tile.
type TileKind uint8

const (
	Empty TileKind = iota
	Vertical
	Horizontal
	NorthEast
	NorthWest
	SouthEast
	SouthWest
	Start
)

var symbols = [...]rune{
	Empty:      '.',
	Vertical:   '|',
	Horizontal: '-',
	NorthEast:  'L',
	NorthWest:  'J',
	SouthEast:  'F',
	SouthWest:  '7',
	Start:      'S',
}

var boxDrawing = [...]rune{
	Empty:      '.',
	Vertical:   '│',
	Horizontal: '─',
	NorthEast:  '╰',
	NorthWest:  '╯',
	SouthEast:  '╭',
	SouthWest:  '╮',
	Start:      'S',
}

var names = [...]string{
	Empty:      "empty",
	Vertical:   "vertical",
	Horizontal: "horizontal",
	NorthEast:  "north-east",
	NorthWest:  "north-west",
	SouthEast:  "south-east",
	SouthWest:  "south-west",
	Start:      "start",
}

var connections = [...][]Direction{
	Empty:      nil,
	Vertical:   {North, South},
	Horizontal: {East, West},
	NorthEast:  {North, East},
	NorthWest:  {North, West},
	SouthEast:  {East, South},
	SouthWest:  {South, West},
	Start:      {North, East, South, West},
}

// KindFromSymbol maps an input rune to its tile kind.
func KindFromSymbol(r rune) (TileKind, bool) {
	for k, s := range symbols {
		if s == r {
			return TileKind(k), true
		}
	}
	return Empty, false
}

// KindFromName maps a name as returned by [TileKind.String] back to its kind.
func KindFromName(name string) (TileKind, bool) {
	for k, n := range names {
		if n == name {
			return TileKind(k), true
		}
	}
	return Empty, false
}

// KindFor returns the pipe kind that connects exactly directions a and b.
// It reports false when a == b.
func KindFor(a, b Direction) (TileKind, bool) {
	for _, k := range []TileKind{Vertical, Horizontal, NorthEast, NorthWest, SouthEast, SouthWest} {
		if k.Connects(a) && k.Connects(b) && a != b {
			return k, true
		}
	}
	return Empty, false
}

// Connections returns the directions the tile opens towards, in [Directions] order.
// Start returns all four candidates; the true pair is resolved by the walk.
func (k TileKind) Connections() []Direction {
	if int(k) >= len(connections) {
		return nil
	}
	return connections[k]
}

// Connects reports whether the tile opens towards d.
func (k TileKind) Connects(d Direction) bool {
	for _, c := range k.Connections() {
		if c == d {
			return true
		}
	}
	return false
}

// IsPipe reports whether k is one of the six two-way connectors.
func (k TileKind) IsPipe() bool {
	return k != Empty && k != Start && int(k) < len(symbols)
}

// Symbol returns the input rune for k.
func (k TileKind) Symbol() rune {
	if int(k) >= len(symbols) {
		return '?'
	}
	return symbols[k]
}

// BoxDrawing returns the box-drawing rune used when rendering k.
func (k TileKind) BoxDrawing() rune {
	if int(k) >= len(boxDrawing) {
		return '?'
	}
	return boxDrawing[k]
}

func (k TileKind) String() string {
	if int(k) >= len(names) {
		return "unknown"
	}
	return names[k]
}
