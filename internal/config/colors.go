package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// Palette holds hex colors for the terminal preview and ASCII dump.
type Palette struct {
	Wall     string `yaml:"wall"`
	Floor    string `yaml:"floor"`
	Corridor string `yaml:"corridor"`
	Rock     string `yaml:"rock"`
	Status   string `yaml:"status"`
}

// Colors is a parsed Palette.
type Colors struct {
	Wall     tcell.Color
	Floor    tcell.Color
	Corridor tcell.Color
	Rock     tcell.Color
	Status   tcell.Color
}

// Colors parses every palette entry. Empty entries fall back to tcell.ColorDefault.
func (p Palette) Colors() (Colors, error) {
	var c Colors
	entries := []struct {
		name string
		hex  string
		dst  *tcell.Color
	}{
		{"wall", p.Wall, &c.Wall},
		{"floor", p.Floor, &c.Floor},
		{"corridor", p.Corridor, &c.Corridor},
		{"rock", p.Rock, &c.Rock},
		{"status", p.Status, &c.Status},
	}

	for _, e := range entries {
		if e.hex == "" {
			*e.dst = tcell.ColorDefault
			continue
		}
		color, err := ParseHexColor(e.hex)
		if err != nil {
			return Colors{}, fmt.Errorf("palette %s: %w", e.name, err)
		}
		*e.dst = color
	}
	return c, nil
}
