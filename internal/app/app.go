//go:build ebiten

package app

import (
	"iter"
	"time"

	"dla/internal/core"
	"dla/internal/render"
	"dla/internal/sims/dla"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a DLA field to the ebiten.Game interface.
type Game struct {
	field   *dla.Field
	painter *render.GridPainter
	hud     *HUD

	next func() (*core.ByteGrid, int, bool)
	stop func()

	scale    int
	perTick  int
	budget   int
	paused   bool
	tickOnce bool
	done     bool
	seed     int64
}

// New constructs a Game that pulls attachments from field.Run(budget).
func New(field *dla.Field, scale, perTick, budget int, seed int64) *Game {
	size := field.Size()
	if perTick <= 0 {
		perTick = 1
	}
	g := &Game{
		field:   field,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     NewHUD(field),
		scale:   scale,
		perTick: perTick,
		budget:  budget,
		seed:    seed,
	}
	g.pull()
	return g
}

func (g *Game) pull() {
	g.next, g.stop = iter.Pull2(g.field.Run(g.budget))
	g.done = false
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.stop()
	g.seed = seed
	g.field.Reset(seed)
	g.tickOnce = false
	g.pull()
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.stop()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud.Toggle()
	}

	if g.done || (g.paused && !g.tickOnce) {
		return nil
	}
	n := g.perTick
	if g.tickOnce {
		n = 1
	}
	for i := 0; i < n; i++ {
		if _, _, ok := g.next(); !ok {
			g.done = true
			break
		}
	}
	g.tickOnce = false
	return g.field.Err()
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.field.Cells(), g.scale)
	g.hud.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.field.Size()
	return s.W * g.scale, s.H * g.scale
}
