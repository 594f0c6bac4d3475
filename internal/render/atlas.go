// Package render turns a classified tile grid into pixels or text.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // atlas formats
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/samdwyer/tiledungeon/internal/config"
	"github.com/samdwyer/tiledungeon/internal/telemetry"
	"github.com/samdwyer/tiledungeon/internal/world"
)

// ErrSpriteOutOfBounds is returned when a sprite block does not fit the atlas.
var ErrSpriteOutOfBounds = errors.New("sprite outside atlas")

// Sprites holds the atlas pixel offset of each sprite.
type Sprites struct {
	Horizontal image.Point // Top and bottom walls
	Right      image.Point
	Left       image.Point
	Floor      image.Point
	Rock       *image.Point // Unclassified tiles; nil leaves them blank
}

// NewSprites reads sprite offsets from the configuration.
func NewSprites(cfg *config.Config) Sprites {
	s := Sprites{
		Horizontal: image.Pt(cfg.WallTileH.X, cfg.WallTileH.Y),
		Right:      image.Pt(cfg.WallTileVRight.X, cfg.WallTileVRight.Y),
		Left:       image.Pt(cfg.WallTileVLeft.X, cfg.WallTileVLeft.Y),
		Floor:      image.Pt(cfg.FloorTile.X, cfg.FloorTile.Y),
	}
	if cfg.RockTile != nil {
		rock := image.Pt(cfg.RockTile.X, cfg.RockTile.Y)
		s.Rock = &rock
	}
	return s
}

// For returns the sprite offset for a wall kind, or false if nothing is drawn.
func (s Sprites) For(kind world.WallKind) (image.Point, bool) {
	switch kind {
	case world.WallTop, world.WallBottom:
		return s.Horizontal, true
	case world.WallRight:
		return s.Right, true
	case world.WallLeft:
		return s.Left, true
	case world.WallFloor:
		return s.Floor, true
	default:
		if s.Rock != nil {
			return *s.Rock, true
		}
		return image.Point{}, false
	}
}

// check verifies every sprite block lies inside the atlas.
func (s Sprites) check(atlas image.Rectangle, tileSize int) error {
	points := map[string]image.Point{
		"horizontal wall": s.Horizontal,
		"right wall":      s.Right,
		"left wall":       s.Left,
		"floor":           s.Floor,
	}
	if s.Rock != nil {
		points["rock"] = *s.Rock
	}

	for name, p := range points {
		block := image.Rect(p.X, p.Y, p.X+tileSize, p.Y+tileSize).Add(atlas.Min)
		if !block.In(atlas) {
			return fmt.Errorf("%w: %s block %v not within %v", ErrSpriteOutOfBounds, name, block, atlas)
		}
	}
	return nil
}

// Compose draws every tile's sprite into a width x height image. Tile (x, y)
// lands at pixel (x*tileSize, y*tileSize).
func Compose(ctx context.Context, g *world.Grid, atlas image.Image, sprites Sprites, tileSize, width, height int) (*image.RGBA, error) {
	tracer := telemetry.Tracer("render")
	_, span := tracer.Start(ctx, "render.compose")
	defer span.End()

	if tileSize <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %d", tileSize)
	}
	if err := sprites.check(atlas.Bounds(), tileSize); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	origin := atlas.Bounds().Min
	blits := 0

	for _, tile := range g.Tiles() {
		offset, ok := sprites.For(tile.Wall)
		if !ok {
			continue
		}
		dp := image.Pt(tile.X*tileSize, tile.Y*tileSize)
		sr := image.Rect(0, 0, tileSize, tileSize).Add(offset).Add(origin)
		xdraw.Copy(dst, dp, atlas, sr, xdraw.Src, nil)
		blits++
	}

	span.SetAttributes(
		attribute.Int("render.width", width),
		attribute.Int("render.height", height),
		attribute.Int("render.tile_size", tileSize),
		attribute.Int("render.blits", blits),
	)
	return dst, nil
}

// LoadAtlas decodes a texture atlas (PNG, JPEG, GIF, BMP or WebP).
func LoadAtlas(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open atlas: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode atlas %s: %w", path, err)
	}
	return img, nil
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
