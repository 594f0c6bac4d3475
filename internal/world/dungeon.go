package world

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/tiledungeon/internal/telemetry"
)

const (
	// DefaultMaxAttempts bounds room placement when Params leaves it unset.
	DefaultMaxAttempts = 10000

	// Rooms start at least this far from the low edges...
	nearMargin = 1
	// ...and end at least this far from the high edges.
	farMargin = 3
)

var (
	// ErrInvalidParams is returned for sizes or counts that make no sense.
	ErrInvalidParams = errors.New("invalid generation parameters")
	// ErrUnsatisfiable is returned when the rooms cannot be placed.
	ErrUnsatisfiable = errors.New("unsatisfiable configuration")
	// ErrRoomTooLarge is returned when the smallest room cannot fit the grid.
	ErrRoomTooLarge = fmt.Errorf("%w: room does not fit the grid", ErrUnsatisfiable)
)

// Random is the random source threaded through generation.
// *math/rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

// Params controls a single generation run.
type Params struct {
	Width       int // Output width in pixels
	Height      int // Output height in pixels
	TileSize    int // Tile edge in pixels
	MinRoomSize int
	MaxRoomSize int
	MinRooms    int
	MaxRooms    int
	MaxAttempts int // Room placement attempt cap; 0 means DefaultMaxAttempts
	Seed        int64
}

// MapSize returns the grid dimensions in tiles. Leftover pixels are unused.
func (p Params) MapSize() (int, int) {
	if p.TileSize <= 0 {
		return 0, 0
	}
	return p.Width / p.TileSize, p.Height / p.TileSize
}

// Validate checks the parameters before any randomness is consumed.
func (p Params) Validate() error {
	switch {
	case p.TileSize <= 0:
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidParams, p.TileSize)
	case p.MinRoomSize <= 0 || p.MaxRoomSize < p.MinRoomSize:
		return fmt.Errorf("%w: room size range [%d, %d]", ErrInvalidParams, p.MinRoomSize, p.MaxRoomSize)
	case p.MinRooms <= 0 || p.MaxRooms < p.MinRooms:
		return fmt.Errorf("%w: room count range [%d, %d]", ErrInvalidParams, p.MinRooms, p.MaxRooms)
	case p.MaxAttempts < 0:
		return fmt.Errorf("%w: max attempts must not be negative", ErrInvalidParams)
	}

	mapW, mapH := p.MapSize()
	if mapW-p.MinRoomSize-farMargin <= nearMargin || mapH-p.MinRoomSize-farMargin <= nearMargin {
		return fmt.Errorf("%w: %dx%d tiles cannot hold a %dx%d room",
			ErrRoomTooLarge, mapW, mapH, p.MinRoomSize, p.MinRoomSize)
	}
	return nil
}

// Corridor records how two consecutive rooms were joined.
type Corridor struct {
	From            Point // Center of the earlier room
	To              Point // Center of the later room
	HorizontalFirst bool
}

// Dungeon is a generated layout.
type Dungeon struct {
	Grid      *Grid
	Rooms     []Rect // Accepted rooms in acceptance order
	Corridors []Corridor
	Attempts  int // Placement attempts used, accepted or not
	Seed      int64

	corridorCells mapset.Set[Point]
}

func newDungeon(g *Grid) *Dungeon {
	return &Dungeon{
		Grid:          g,
		corridorCells: mapset.New[Point](),
	}
}

// CorridorCells returns every tile carved by a tunnel.
func (d *Dungeon) CorridorCells() []Point {
	cells := make([]Point, 0, d.corridorCells.Size())
	d.corridorCells.Each(func(p Point) {
		cells = append(cells, p)
	})
	return cells
}

// IsCorridor returns true if a tunnel passed through the point.
func (d *Dungeon) IsCorridor(x, y int) bool {
	return d.corridorCells.Has(Point{X: x, Y: y})
}

// RoomIndexAt returns the index of the room containing the position, or -1 if not in a room.
func (d *Dungeon) RoomIndexAt(x, y int) int {
	for i, room := range d.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Generate places rooms, carves them, and joins consecutive rooms with tunnels.
func Generate(ctx context.Context, p Params, rng Random) (*Dungeon, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	if err := p.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	mapW, mapH := p.MapSize()
	d := newDungeon(NewGrid(mapW, mapH))
	d.Seed = p.Seed

	target := p.MinRooms + rng.Intn(p.MaxRooms-p.MinRooms+1)
	d.Rooms = make([]Rect, 0, target)

	if err := d.placeRooms(ctx, p, rng, target); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.Int("dungeon.room_target", target),
			attribute.Int("dungeon.room_count", len(d.Rooms)),
			attribute.Int("dungeon.attempts", d.Attempts),
		)
		return nil, err
	}

	d.connectRooms(rng)

	span.SetAttributes(
		attribute.Int("dungeon.width", mapW),
		attribute.Int("dungeon.height", mapH),
		attribute.Int64("dungeon.seed", p.Seed),
		attribute.Int("dungeon.room_target", target),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int("dungeon.attempts", d.Attempts),
		attribute.Int("dungeon.rejections", d.Attempts-len(d.Rooms)),
		attribute.Int("dungeon.corridors", len(d.Corridors)),
		attribute.Int("dungeon.passable", d.Grid.PassableCount()),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return d, nil
}

// placeRooms samples rooms until target are accepted or the attempt cap runs out.
func (d *Dungeon) placeRooms(ctx context.Context, p Params, rng Random, target int) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for len(d.Rooms) < target {
		if d.Attempts >= maxAttempts {
			return fmt.Errorf("%w: placed %d of %d rooms in %d attempts",
				ErrUnsatisfiable, len(d.Rooms), target, d.Attempts)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		d.Attempts++

		room, ok := d.sampleRoom(p, rng)
		if !ok || d.intersectsAny(room) {
			continue
		}

		carveRoom(d.Grid, room)
		d.Rooms = append(d.Rooms, room)
	}
	return nil
}

// sampleRoom draws a candidate room. It reports false when the drawn size
// leaves no valid position.
func (d *Dungeon) sampleRoom(p Params, rng Random) (Rect, bool) {
	w := p.MinRoomSize + rng.Intn(p.MaxRoomSize-p.MinRoomSize+1)
	h := p.MinRoomSize + rng.Intn(p.MaxRoomSize-p.MinRoomSize+1)

	boundsX := d.Grid.Width - w - farMargin
	boundsY := d.Grid.Height - h - farMargin
	if boundsX <= nearMargin || boundsY <= nearMargin {
		return Rect{}, false
	}

	x := nearMargin + rng.Intn(boundsX-nearMargin)
	y := nearMargin + rng.Intn(boundsY-nearMargin)
	return Rect{X: x, Y: y, W: w, H: h}, true
}

func (d *Dungeon) intersectsAny(candidate Rect) bool {
	for _, room := range d.Rooms {
		if candidate.Intersects(room) {
			return true
		}
	}
	return false
}

// carveRoom opens every tile of the room and classifies its outer ring.
// Rooms touching the grid edge stay all floor.
func carveRoom(g *Grid, room Rect) {
	refine := room.X > 0 && room.Y > 0 &&
		room.X+room.W < g.Width && room.Y+room.H < g.Height

	for x := room.X; x < room.X+room.W; x++ {
		for y := room.Y; y < room.Y+room.H; y++ {
			t, ok := g.At(x, y)
			if !ok {
				continue
			}
			t.MarkPassable()
			t.SetWall(WallFloor)

			if !refine {
				continue
			}

			if t.North() == room.Y+room.H {
				t.SetWall(WallTop)
			} else if t.South() == room.Y-1 {
				t.SetWall(WallBottom)
			}

			// Vertical walls win on corners.
			if t.East() == room.X+room.W {
				t.SetWall(WallRight)
			} else if t.West() == room.X-1 {
				t.SetWall(WallLeft)
			}
		}
	}
}

// connectRooms joins each room to the next one in acceptance order.
func (d *Dungeon) connectRooms(rng Random) {
	for i := 0; i+1 < len(d.Rooms); i++ {
		current := d.Rooms[i].Center()
		next := d.Rooms[i+1].Center()
		horizontalFirst := rng.Intn(2) == 0

		d.carveCorridor(current, next, horizontalFirst)
	}
}

// carveCorridor carves an L-shaped path between two room centers.
func (d *Dungeon) carveCorridor(current, next Point, horizontalFirst bool) {
	var cells []Point
	if horizontalFirst {
		cells = append(cells, carveHorizontalTunnel(d.Grid, next.X, current.X, next.Y)...)
		cells = append(cells, carveVerticalTunnel(d.Grid, next.Y, current.Y, current.X)...)
	} else {
		cells = append(cells, carveVerticalTunnel(d.Grid, next.Y, current.Y, next.X)...)
		cells = append(cells, carveHorizontalTunnel(d.Grid, next.X, current.X, current.Y)...)
	}

	for _, c := range cells {
		d.corridorCells.Put(c)
	}
	d.Corridors = append(d.Corridors, Corridor{
		From:            current,
		To:              next,
		HorizontalFirst: horizontalFirst,
	})
}

// carveHorizontalTunnel opens [min(x1,x2), max(x1,x2)) on row y and walls
// the rows above and below. Only the first cell caps its row ends.
func carveHorizontalTunnel(g *Grid, x1, x2, y int) []Point {
	minX, maxX := min(x1, x2), max(x1, x2)
	carved := make([]Point, 0, maxX-minX)

	for x := minX; x < maxX; x++ {
		t, ok := g.At(x, y)
		if !ok {
			continue
		}
		t.MarkPassable()
		t.SetWall(WallFloor)
		carved = append(carved, Point{X: x, Y: y})

		if x == minX {
			for _, dir := range []Direction{East, West} {
				if n, ok := g.Neighbor(x, y, dir); ok && n.Wall == WallNone {
					n.SetWall(WallTop)
				}
			}
		}

		if n, ok := g.Neighbor(x, y, North); ok && overwritableByHorizontal(n.Wall) {
			n.SetWall(WallTop)
		}
		if n, ok := g.Neighbor(x, y, South); ok && overwritableByHorizontal(n.Wall) {
			n.SetWall(WallBottom)
		}
	}
	return carved
}

// carveVerticalTunnel opens [min(y1,y2), max(y1,y2)) on column x and walls
// the columns either side.
func carveVerticalTunnel(g *Grid, y1, y2, x int) []Point {
	minY, maxY := min(y1, y2), max(y1, y2)
	carved := make([]Point, 0, maxY-minY)

	for y := minY; y < maxY; y++ {
		t, ok := g.At(x, y)
		if !ok {
			continue
		}
		t.MarkPassable()
		t.SetWall(WallFloor)
		carved = append(carved, Point{X: x, Y: y})

		if n, ok := g.Neighbor(x, y, East); ok && overwritableByVertical(n.Wall) {
			n.SetWall(WallRight)
		}
		if n, ok := g.Neighbor(x, y, West); ok && overwritableByVertical(n.Wall) {
			n.SetWall(WallLeft)
		}
	}
	return carved
}

// Floors and top walls survive a horizontal tunnel passing by.
func overwritableByHorizontal(k WallKind) bool {
	switch k {
	case WallBottom, WallRight, WallLeft, WallNone:
		return true
	default:
		return false
	}
}

func overwritableByVertical(k WallKind) bool {
	switch k {
	case WallRight, WallLeft, WallNone:
		return true
	default:
		return false
	}
}
