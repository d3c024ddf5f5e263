//go:build !tinygo && cgo

package hal

import (
	"image"

	"dial/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunWindow starts a desktop window that displays the framebuffer.
// Pressing L toggles the simulated phone link. It blocks until the window
// closes.
func RunWindow(newApp func(HAL) func() error, opts HostOptions) error {
	h := newHost(opts)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle(windowTitle(true))
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		if up, ok := g.h.toggleLink(); ok {
			ebiten.SetWindowTitle(windowTitle(up))
		}
	}
	g.h.t.step()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)

	for y := 0; y < fb.height; y++ {
		row := g.scratch[y*fb.stride:]
		for x := 0; x < fb.width; x++ {
			g.img.SetRGBA(x, y, ColorOf565(uint16(row[2*x])|uint16(row[2*x+1])<<8))
		}
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}

func windowTitle(linkUp bool) string {
	title := "Dial (" + buildinfo.Short() + ")"
	if !linkUp {
		title += " - phone disconnected"
	}
	return title
}
