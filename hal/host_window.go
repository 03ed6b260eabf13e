//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"

	"effects/internal/buildinfo"
)

// RunWindow opens a resizable desktop window, forwards keyboard, mouse and
// touch input and drives app once per frame. It blocks until the window
// closes or the app returns an error.
func RunWindow(cfg WindowConfig, newApp func(HAL) (App, error)) error {
	s := cfg.Surface.withDefaults()
	g := newEbitenGraphics(s.NoShaders)
	g.resize(s.Width, s.Height)
	h := newHost(s, g, 0)

	app, err := newApp(h)
	if err != nil {
		return err
	}
	game := &hostGame{h: h, g: g, app: app}

	title := cfg.Title
	if title == "" {
		title = "Effects"
	}
	tps := cfg.TPS
	if tps <= 0 {
		tps = 60
	}
	ebiten.SetWindowTitle(title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(s.Width, s.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// Views that render on demand leave the previous frame on screen.
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetTPS(tps)
	return ebiten.RunGame(game)
}

type hostGame struct {
	h   *hostHAL
	g   *ebitenGraphics
	app App
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.touch.poll()
	g.h.t.step()
	if g.app == nil {
		return nil
	}
	return g.app.Update()
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.app == nil {
		return
	}
	g.g.begin(screen)
	defer g.g.end()
	g.app.Draw()
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.g.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
