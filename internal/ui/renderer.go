package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tiledungeon/internal/config"
	"github.com/samdwyer/tiledungeon/internal/world"
)

// corridorRune marks corridor floor so tunnels stand out from rooms.
const corridorRune = '#'

// View describes which part of the dungeon is on screen.
type View struct {
	OffsetX, OffsetY int // Tile shown in the top-left cell
	Status           string
}

// Renderer handles drawing the dungeon to the screen.
type Renderer struct {
	screen *Screen
	colors config.Colors
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, colors config.Colors) *Renderer {
	return &Renderer{screen: screen, colors: colors}
}

// MapViewport returns how many tiles fit on screen; the last row holds the status line.
func (r *Renderer) MapViewport() (int, int) {
	w, h := r.screen.Size()
	if h > 0 {
		h--
	}
	return w, h
}

// Render draws the visible part of the dungeon and the status line.
// Screen row 0 shows tile row OffsetY, matching the composed image.
func (r *Renderer) Render(d *world.Dungeon, view View) {
	r.screen.Clear()

	viewW, viewH := r.MapViewport()
	for sy := 0; sy < viewH; sy++ {
		for sx := 0; sx < viewW; sx++ {
			x, y := view.OffsetX+sx, view.OffsetY+sy
			tile, ok := d.Grid.At(x, y)
			if !ok {
				continue
			}
			ch, style := r.cell(d, tile)
			r.screen.SetContent(sx, sy, ch, style)
		}
	}

	r.RenderMessage(view.Status, viewH)
	r.screen.Show()
}

// cell returns the glyph and style for a tile.
func (r *Renderer) cell(d *world.Dungeon, tile *world.Tile) (rune, tcell.Style) {
	switch tile.Wall {
	case world.WallNone:
		return ' ', tcell.StyleDefault.Background(r.colors.Rock)
	case world.WallFloor:
		if d.IsCorridor(tile.X, tile.Y) {
			return corridorRune, tcell.StyleDefault.Foreground(r.colors.Corridor)
		}
		return tile.Wall.Rune(), tcell.StyleDefault.Foreground(r.colors.Floor)
	default:
		return tile.Wall.Rune(), tcell.StyleDefault.Foreground(r.colors.Wall).Bold(true)
	}
}

// RenderMessage displays a message on the given screen row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(r.colors.Status)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
