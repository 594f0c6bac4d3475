package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/samdwyer/tiledungeon/internal/config"
	"github.com/samdwyer/tiledungeon/internal/world"
)

const testTile = 2

var (
	colorH     = color.RGBA{R: 255, A: 255}
	colorRight = color.RGBA{G: 255, A: 255}
	colorLeft  = color.RGBA{B: 255, A: 255}
	colorFloor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	colorRock  = color.RGBA{R: 10, G: 20, B: 30, A: 255}
)

// testAtlas is a 10x2 strip of five solid 2x2 sprites.
func testAtlas() (*image.RGBA, Sprites) {
	atlas := image.NewRGBA(image.Rect(0, 0, 5*testTile, testTile))
	fills := []color.RGBA{colorH, colorRight, colorLeft, colorFloor, colorRock}
	for i, c := range fills {
		for x := i * testTile; x < (i+1)*testTile; x++ {
			for y := 0; y < testTile; y++ {
				atlas.SetRGBA(x, y, c)
			}
		}
	}

	rock := image.Pt(8, 0)
	return atlas, Sprites{
		Horizontal: image.Pt(0, 0),
		Right:      image.Pt(2, 0),
		Left:       image.Pt(4, 0),
		Floor:      image.Pt(6, 0),
		Rock:       &rock,
	}
}

func testGrid() *world.Grid {
	g := world.NewGrid(3, 2)
	kinds := map[[2]int]world.WallKind{
		{0, 0}: world.WallTop,
		{1, 0}: world.WallBottom,
		{2, 0}: world.WallRight,
		{0, 1}: world.WallLeft,
		{1, 1}: world.WallFloor,
	}
	for p, k := range kinds {
		tile, _ := g.At(p[0], p[1])
		tile.SetWall(k)
	}
	return g
}

func TestSpritesFor(t *testing.T) {
	_, sprites := testAtlas()

	tests := []struct {
		kind world.WallKind
		want image.Point
	}{
		{world.WallTop, sprites.Horizontal},
		{world.WallBottom, sprites.Horizontal},
		{world.WallRight, sprites.Right},
		{world.WallLeft, sprites.Left},
		{world.WallFloor, sprites.Floor},
		{world.WallNone, *sprites.Rock},
	}
	for _, tt := range tests {
		got, ok := sprites.For(tt.kind)
		if !ok || got != tt.want {
			t.Errorf("For(%v) = %v, %v; want %v", tt.kind, got, ok, tt.want)
		}
	}

	sprites.Rock = nil
	if _, ok := sprites.For(world.WallNone); ok {
		t.Error("unclassified tiles should not be drawn without a rock sprite")
	}
}

func TestCompose(t *testing.T) {
	atlas, sprites := testAtlas()
	// one spare pixel column past the last whole tile
	img, err := Compose(context.Background(), testGrid(), atlas, sprites, testTile, 7, 4)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 7, 4) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}

	want := map[[2]int]color.RGBA{
		{0, 0}: colorH,
		{1, 0}: colorH,
		{2, 0}: colorRight,
		{0, 1}: colorLeft,
		{1, 1}: colorFloor,
		{2, 1}: colorRock,
	}
	for tp, c := range want {
		for dx := 0; dx < testTile; dx++ {
			for dy := 0; dy < testTile; dy++ {
				px, py := tp[0]*testTile+dx, tp[1]*testTile+dy
				if got := img.RGBAAt(px, py); got != c {
					t.Errorf("pixel (%d,%d) of tile %v = %v, want %v", px, py, tp, got, c)
				}
			}
		}
	}

	if got := img.RGBAAt(6, 0); got != (color.RGBA{}) {
		t.Errorf("unused pixel column was drawn: %v", got)
	}
}

func TestComposeWithoutRockLeavesBlank(t *testing.T) {
	atlas, sprites := testAtlas()
	sprites.Rock = nil

	img, err := Compose(context.Background(), testGrid(), atlas, sprites, testTile, 6, 4)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if got := img.RGBAAt(4, 2); got != (color.RGBA{}) {
		t.Errorf("unclassified tile was drawn: %v", got)
	}
}

func TestComposeSpriteOutOfBounds(t *testing.T) {
	atlas, sprites := testAtlas()
	sprites.Floor = image.Pt(9, 0)

	_, err := Compose(context.Background(), testGrid(), atlas, sprites, testTile, 6, 4)
	if !errors.Is(err, ErrSpriteOutOfBounds) {
		t.Fatalf("expected ErrSpriteOutOfBounds, got %v", err)
	}
}

func TestNewSprites(t *testing.T) {
	cfg := config.MustDefault()
	s := NewSprites(cfg)
	if s.Left != image.Pt(cfg.WallTileVLeft.X, cfg.WallTileVLeft.Y) {
		t.Errorf("unexpected left sprite %v", s.Left)
	}
	if s.Rock != nil {
		t.Errorf("expected no rock sprite, got %v", *s.Rock)
	}

	cfg.RockTile = &config.Offset{X: 3, Y: 4}
	if s := NewSprites(cfg); s.Rock == nil || *s.Rock != image.Pt(3, 4) {
		t.Errorf("unexpected rock sprite %v", s.Rock)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	atlas, _ := testAtlas()
	path := filepath.Join(t.TempDir(), "atlas.png")

	if err := SavePNG(path, atlas); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	loaded, err := LoadAtlas(path)
	if err != nil {
		t.Fatalf("LoadAtlas failed: %v", err)
	}
	if loaded.Bounds() != atlas.Bounds() {
		t.Errorf("bounds %v, want %v", loaded.Bounds(), atlas.Bounds())
	}

	if _, err := LoadAtlas(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing atlas")
	}
}
