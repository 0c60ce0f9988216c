package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/cityrun/ecs"
	"github.com/plus3/cityrun/internal/debugui"
	"github.com/plus3/cityrun/internal/render"
	"github.com/plus3/cityrun/internal/runner"
	"github.com/rs/zerolog"
)

const statsEvery = 600

// Game adapts a runner session to ebiten. Update forwards key transitions
// and advances the session one tick; Draw renders it.
type Game struct {
	session  *runner.Session
	renderer *render.Renderer
	log      zerolog.Logger
	keys     []ebiten.Key

	// set when the debug overlay is enabled
	overlay *ecs.Singleton[debugui.Backend]
	capture *ecs.Singleton[debugui.ImguiInputState]
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.overlay != nil {
		g.overlay.Get().BeginFrame()
	}

	g.forwardKeys()
	g.session.Tick()

	if g.overlay != nil {
		g.overlay.Get().EndFrame()
	}

	if g.session.Scheduler().Tick()%statsEvery == 0 {
		g.session.LogStats()
	}
	return nil
}

// forwardKeys reports this frame's key transitions to the session. Presses
// are withheld while the overlay has keyboard focus; releases always pass so
// no key stays stuck.
func (g *Game) forwardKeys() {
	captured := g.capture != nil && g.capture.Get().WantCaptureKeyboard

	if !captured {
		g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
		for _, k := range g.keys {
			g.session.Press(k.String())
		}
	}

	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.session.Release(k.String())
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.session.Label(runner.ScoreLabel))

	if g.overlay != nil {
		g.overlay.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.renderer.Resize(outsideWidth, outsideHeight)
	if g.overlay != nil {
		g.overlay.Get().Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
