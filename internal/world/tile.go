// Package world provides dungeon generation and wall classification.
package world

// WallKind tells the renderer which sprite a tile takes.
type WallKind uint8

const (
	// WallNone marks untouched solid rock.
	WallNone WallKind = iota
	// WallTop is a horizontal wall on the high-y side of a room or corridor.
	WallTop
	// WallBottom is a horizontal wall on the low-y side.
	WallBottom
	// WallLeft is a vertical wall on the low-x side.
	WallLeft
	// WallRight is a vertical wall on the high-x side.
	WallRight
	// WallFloor is an interior passable tile with no wall.
	WallFloor
)

// String returns a human-readable wall kind name.
func (k WallKind) String() string {
	switch k {
	case WallNone:
		return "none"
	case WallTop:
		return "top"
	case WallBottom:
		return "bottom"
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	case WallFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// Rune returns the tile's display character.
func (k WallKind) Rune() rune {
	switch k {
	case WallTop, WallBottom:
		return '-'
	case WallLeft, WallRight:
		return '|'
	case WallFloor:
		return '.'
	default:
		return ' '
	}
}

// Tile is a single grid cell.
type Tile struct {
	X, Y     int
	Passable bool
	Wall     WallKind
}

// MarkPassable opens the tile. It is never closed again.
func (t *Tile) MarkPassable() {
	t.Passable = true
}

// SetWall overwrites the tile's classification.
func (t *Tile) SetWall(kind WallKind) {
	t.Wall = kind
}

// Classified returns true if carving has assigned the tile a wall kind.
func (t *Tile) Classified() bool {
	return t.Wall != WallNone
}

// North returns the y coordinate above the tile.
func (t *Tile) North() int { return t.Y + 1 }

// South returns the y coordinate below the tile. It may be negative.
func (t *Tile) South() int { return t.Y - 1 }

// East returns the x coordinate right of the tile.
func (t *Tile) East() int { return t.X + 1 }

// West returns the x coordinate left of the tile. It may be negative.
func (t *Tile) West() int { return t.X - 1 }
