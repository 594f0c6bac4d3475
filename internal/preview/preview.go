// Package preview provides an interactive terminal view of generated dungeons.
package preview

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tiledungeon/internal/config"
	"github.com/samdwyer/tiledungeon/internal/telemetry"
	"github.com/samdwyer/tiledungeon/internal/ui"
	"github.com/samdwyer/tiledungeon/internal/world"
)

// Preview holds the interactive session state.
type Preview struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	cfg      *config.Config
	dungeon  *world.Dungeon
	offsetX  int
	offsetY  int
	message  string
	running  bool

	// newSeed picks the seed for each regeneration.
	newSeed func() int64
}

// New opens the terminal and creates a preview of d.
func New(cfg *config.Config, d *world.Dungeon) (*Preview, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	p, err := NewWithScreen(screen, cfg, d)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return p, nil
}

// NewWithScreen creates a preview on an already initialized screen.
func NewWithScreen(screen *ui.Screen, cfg *config.Config, d *world.Dungeon) (*Preview, error) {
	colors, err := cfg.Palette.Colors()
	if err != nil {
		return nil, err
	}

	return &Preview{
		screen:   screen,
		renderer: ui.NewRenderer(screen, colors),
		cfg:      cfg,
		dungeon:  d,
		running:  true,
		newSeed:  func() int64 { return time.Now().UnixNano() },
	}, nil
}

// Run executes the preview loop until the user quits.
func (p *Preview) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("preview")
	_, span := tracer.Start(ctx, "preview.init")
	span.SetAttributes(
		attribute.Int("dungeon.rooms", len(p.dungeon.Rooms)),
		attribute.Int64("dungeon.seed", p.dungeon.Seed),
	)
	span.End()

	for p.running {
		p.Draw()

		// Handle input (blocking)
		p.handleInput(ctx)
	}

	p.screen.Close()
	return nil
}

// Draw renders the current dungeon and status line.
func (p *Preview) Draw() {
	p.renderer.Render(p.dungeon, ui.View{
		OffsetX: p.offsetX,
		OffsetY: p.offsetY,
		Status:  p.status(),
	})
}

// Dungeon returns the dungeon on display.
func (p *Preview) Dungeon() *world.Dungeon {
	return p.dungeon
}

// Running reports whether the loop will keep going.
func (p *Preview) Running() bool {
	return p.running
}

// Offset returns the tile shown in the top-left corner.
func (p *Preview) Offset() (int, int) {
	return p.offsetX, p.offsetY
}

func (p *Preview) status() string {
	if p.message != "" {
		return p.message
	}
	return fmt.Sprintf("rooms: %d  corridors: %d  seed: %d  [arrows] scroll [r] regenerate [q] quit",
		len(p.dungeon.Rooms), len(p.dungeon.Corridors), p.dungeon.Seed)
}

// handleInput processes a single input event.
func (p *Preview) handleInput(ctx context.Context) {
	ev := p.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		p.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		p.scroll(0, 0)
		p.screen.Sync()
	case nil:
		// Screen finalized underneath us.
		p.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (p *Preview) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		p.running = false

	case tcell.KeyUp:
		p.scroll(0, -1)
	case tcell.KeyDown:
		p.scroll(0, 1)
	case tcell.KeyLeft:
		p.scroll(-1, 0)
	case tcell.KeyRight:
		p.scroll(1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			p.running = false
		case 'r', 'R':
			p.regenerate(ctx)
		}
	}
}

// scroll moves the view, keeping it on the map.
func (p *Preview) scroll(dx, dy int) {
	viewW, viewH := p.renderer.MapViewport()
	maxX := max(0, p.dungeon.Grid.Width-viewW)
	maxY := max(0, p.dungeon.Grid.Height-viewH)

	p.offsetX = min(max(p.offsetX+dx, 0), maxX)
	p.offsetY = min(max(p.offsetY+dy, 0), maxY)
}

// regenerate replaces the dungeon with a fresh one. Failures keep the old
// dungeon and show the error on the status line.
func (p *Preview) regenerate(ctx context.Context) {
	seed := p.newSeed()
	d, err := world.Generate(ctx, p.cfg.Params(seed), rand.New(rand.NewSource(seed)))
	if err != nil {
		p.message = "regenerate failed: " + err.Error()
		return
	}

	p.dungeon = d
	p.message = ""
	p.scroll(0, 0)
}
