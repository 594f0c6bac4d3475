package world

// Direction names one of the four grid neighbors.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Grid is a dense column-major array of tiles.
type Grid struct {
	Width  int
	Height int
	tiles  []Tile
}

// NewGrid creates a grid of solid rock.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	g := &Grid{
		Width:  width,
		Height: height,
		tiles:  make([]Tile, width*height),
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			g.tiles[g.index(x, y)] = Tile{X: x, Y: y}
		}
	}
	return g
}

// index is the only place tile addresses are computed. Tiles are stored a
// column at a time, so the stride is the column length.
func (g *Grid) index(x, y int) int {
	return x*g.Height + y
}

// InBounds returns true if the coordinate lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at the given position, or false if it is off the grid.
func (g *Grid) At(x, y int) (*Tile, bool) {
	if !g.InBounds(x, y) {
		return nil, false
	}
	return &g.tiles[g.index(x, y)], true
}

// Neighbor returns the tile next to (x, y) in the given direction, or false
// when that probe leaves the grid.
func (g *Grid) Neighbor(x, y int, dir Direction) (*Tile, bool) {
	t, ok := g.At(x, y)
	if !ok {
		return nil, false
	}
	switch dir {
	case North:
		return g.At(x, t.North())
	case South:
		return g.At(x, t.South())
	case East:
		return g.At(t.East(), y)
	case West:
		return g.At(t.West(), y)
	default:
		return nil, false
	}
}

// Tiles returns every tile in storage order.
func (g *Grid) Tiles() []Tile {
	return g.tiles
}

// PassableCount returns the number of open tiles.
func (g *Grid) PassableCount() int {
	n := 0
	for i := range g.tiles {
		if g.tiles[i].Passable {
			n++
		}
	}
	return n
}
