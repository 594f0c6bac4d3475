package render

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/gookit/color"

	"github.com/samdwyer/tiledungeon/internal/world"
)

func generateSmall(t *testing.T) *world.Dungeon {
	t.Helper()
	p := world.Params{
		Width: 400, Height: 300, TileSize: 10,
		MinRoomSize: 3, MaxRoomSize: 6,
		MinRooms: 3, MaxRooms: 5,
	}
	d, err := world.Generate(context.Background(), p, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return d
}

func TestWriteASCII(t *testing.T) {
	d := generateSmall(t)

	var buf bytes.Buffer
	if err := WriteASCII(&buf, d, false); err != nil {
		t.Fatalf("WriteASCII failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != d.Grid.Height {
		t.Fatalf("expected %d lines, got %d", d.Grid.Height, len(lines))
	}

	for y, line := range lines {
		if len(line) != d.Grid.Width {
			t.Fatalf("line %d has %d columns, want %d", y, len(line), d.Grid.Width)
		}
		for x, ch := range line {
			tile, _ := d.Grid.At(x, y)
			want := tile.Wall.Rune()
			if tile.Wall == world.WallFloor && d.IsCorridor(x, y) {
				want = '#'
			}
			if ch != want {
				t.Errorf("(%d,%d) = %q, want %q", x, y, ch, want)
			}
		}
	}
}

func TestWriteASCIIColoredStripsToPlain(t *testing.T) {
	d := generateSmall(t)

	var plain, colored bytes.Buffer
	if err := WriteASCII(&plain, d, false); err != nil {
		t.Fatalf("WriteASCII failed: %v", err)
	}
	if err := WriteASCII(&colored, d, true); err != nil {
		t.Fatalf("WriteASCII failed: %v", err)
	}

	if got := color.ClearCode(colored.String()); got != plain.String() {
		t.Error("colored output differs from plain output once escape codes are removed")
	}
}
