package render

import (
	"bufio"
	"io"

	"github.com/gookit/color"

	"github.com/samdwyer/tiledungeon/internal/world"
)

var (
	styleWall     = color.Style{color.FgYellow}
	styleFloor    = color.Style{color.FgGray}
	styleCorridor = color.Style{color.FgWhite, color.OpBold}
)

// WriteASCII dumps the dungeon one row per line, in the same orientation as
// the composed image (row 0 first). Corridor floors print as '#'.
func WriteASCII(w io.Writer, d *world.Dungeon, colored bool) error {
	bw := bufio.NewWriter(w)
	g := d.Grid

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			tile, _ := g.At(x, y)
			glyph := string(tile.Wall.Rune())
			style := styleWall

			switch {
			case tile.Wall == world.WallFloor && d.IsCorridor(x, y):
				glyph = "#"
				style = styleCorridor
			case tile.Wall == world.WallFloor:
				style = styleFloor
			case tile.Wall == world.WallNone:
				style = nil
			}

			if colored && style != nil {
				glyph = style.Sprint(glyph)
			}
			if _, err := bw.WriteString(glyph); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
