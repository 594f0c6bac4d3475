// Package config loads the generator's YAML configuration.
package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/tiledungeon/internal/world"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Offset is a pixel position in the texture atlas, written as [x, y] or {x: .., y: ..}.
type Offset struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// UnmarshalYAML accepts both the sequence and mapping forms.
func (o *Offset) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var pair []int
		if err := value.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: offset needs 2 values, got %d", value.Line, len(pair))
		}
		o.X, o.Y = pair[0], pair[1]
		return nil
	}

	type plain Offset
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*o = Offset(p)
	return nil
}

// Config holds every setting the CLI needs to generate and render a map.
type Config struct {
	Width    int `yaml:"width"`     // Output width in pixels
	Height   int `yaml:"height"`    // Output height in pixels
	TileSize int `yaml:"tile_size"` // Tile edge in pixels

	WallTileH      Offset  `yaml:"wall_tile_h"`       // Top and bottom walls
	WallTileVRight Offset  `yaml:"wall_tile_v_right"` // Right walls
	WallTileVLeft  Offset  `yaml:"wall_tile_v_left"`  // Left walls
	FloorTile      Offset  `yaml:"floor_tile"`
	RockTile       *Offset `yaml:"rock_tile,omitempty"` // Unclassified tiles; nil leaves them blank

	MinRoomSize int `yaml:"min_room_size"`
	MaxRoomSize int `yaml:"max_room_size"`
	MinRooms    int `yaml:"min_rooms"`
	MaxRooms    int `yaml:"max_rooms"`
	MaxAttempts int `yaml:"max_attempts"`

	// Seed for random number generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `yaml:"seed"`

	Palette Palette `yaml:"palette"`
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	cfg, err := loadEmbedded[Config](defaultFile)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustDefault returns the embedded configuration, panicking on error.
func MustDefault() *Config {
	cfg, err := Default()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadFile reads and validates the configuration at path. An empty path
// selects the embedded default.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		cfg, err := Default()
		if err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}

	cfg, err := Load[Config](path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks sizes, ranges, and offsets.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile_size must be positive, got %d", ErrInvalid, c.TileSize)
	case c.Width < c.TileSize || c.Height < c.TileSize:
		return fmt.Errorf("%w: %dx%d image holds no %dpx tile", ErrInvalid, c.Width, c.Height, c.TileSize)
	case c.MinRoomSize <= 0 || c.MaxRoomSize < c.MinRoomSize:
		return fmt.Errorf("%w: room size range [%d, %d]", ErrInvalid, c.MinRoomSize, c.MaxRoomSize)
	case c.MinRooms <= 0 || c.MaxRooms < c.MinRooms:
		return fmt.Errorf("%w: room count range [%d, %d]", ErrInvalid, c.MinRooms, c.MaxRooms)
	case c.MaxAttempts < 0:
		return fmt.Errorf("%w: max_attempts must not be negative", ErrInvalid)
	}

	offsets := map[string]Offset{
		"wall_tile_h":       c.WallTileH,
		"wall_tile_v_right": c.WallTileVRight,
		"wall_tile_v_left":  c.WallTileVLeft,
		"floor_tile":        c.FloorTile,
	}
	if c.RockTile != nil {
		offsets["rock_tile"] = *c.RockTile
	}
	for name, o := range offsets {
		if o.X < 0 || o.Y < 0 {
			return fmt.Errorf("%w: %s offset (%d, %d) is negative", ErrInvalid, name, o.X, o.Y)
		}
	}

	if _, err := c.Palette.Colors(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Params returns the generation parameters with the given seed.
func (c *Config) Params(seed int64) world.Params {
	return world.Params{
		Width:       c.Width,
		Height:      c.Height,
		TileSize:    c.TileSize,
		MinRoomSize: c.MinRoomSize,
		MaxRoomSize: c.MaxRoomSize,
		MinRooms:    c.MinRooms,
		MaxRooms:    c.MaxRooms,
		MaxAttempts: c.MaxAttempts,
		Seed:        seed,
	}
}
