package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tiledungeon/internal/config"
	"github.com/samdwyer/tiledungeon/internal/world"
)

func newSimScreen(t *testing.T, w, h int) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom failed: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(screen.Close)
	return screen
}

func testColors(t *testing.T) config.Colors {
	t.Helper()
	colors, err := config.MustDefault().Palette.Colors()
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	return colors
}

func TestRenderDrawsClassifiedTiles(t *testing.T) {
	screen := newSimScreen(t, 6, 5)
	g := world.NewGrid(8, 8)
	set := func(x, y int, k world.WallKind) {
		tile, _ := g.At(x, y)
		tile.SetWall(k)
	}
	set(0, 0, world.WallTop)
	set(1, 0, world.WallLeft)
	set(2, 0, world.WallFloor)
	set(3, 1, world.WallRight)
	d := &world.Dungeon{Grid: g}

	r := NewRenderer(screen, testColors(t))
	r.Render(d, View{Status: "ok"})

	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, '-'},
		{1, 0, '|'},
		{2, 0, '.'},
		{3, 1, '|'},
		{0, 4, 'o'}, // status line is the last row
	}
	for _, tt := range tests {
		if got, _ := screen.GetContent(tt.x, tt.y); got != tt.want {
			t.Errorf("cell (%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRenderRespectsOffset(t *testing.T) {
	screen := newSimScreen(t, 4, 4)
	g := world.NewGrid(10, 10)
	tile, _ := g.At(5, 6)
	tile.SetWall(world.WallBottom)
	d := &world.Dungeon{Grid: g}

	r := NewRenderer(screen, testColors(t))
	r.Render(d, View{OffsetX: 4, OffsetY: 5})

	if got, _ := screen.GetContent(1, 1); got != '-' {
		t.Errorf("offset tile drawn as %q, want '-'", got)
	}
}

func TestMapViewportReservesStatusLine(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	r := NewRenderer(screen, testColors(t))
	if w, h := r.MapViewport(); w != 20 || h != 9 {
		t.Errorf("MapViewport = %dx%d, want 20x9", w, h)
	}
}
