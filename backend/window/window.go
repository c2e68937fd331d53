// Package window presents the spiral in a native window using gogpu.
//
// The animation is drawn into the layer stack on the CPU, composited, and
// uploaded through a ggcanvas.Canvas every frame:
//
//	layers.Stack → image.RGBA → gg.Context (canvas) → gogpu.Context → Window
//
// Importing the package registers the "window" backend and the gg GPU
// accelerator.
package window

import (
	"context"
	"fmt"
	"image"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // Register GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/spiral"
	"github.com/gogpu/spiral/backend"
	"github.com/gogpu/spiral/internal/hud"
)

func init() {
	backend.Register(backend.BackendWindow, func() backend.Presenter {
		return New()
	})
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithHUD draws a status line over every frame.
func WithHUD(o *hud.Overlay) Option {
	return func(p *Presenter) {
		p.hud = o
	}
}

// Presenter shows a session in a gogpu window.
type Presenter struct {
	hud *hud.Overlay
}

// New returns a window presenter.
func New(opts ...Option) *Presenter {
	p := &Presenter{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the backend identifier.
func (p *Presenter) Name() string {
	return backend.BackendWindow
}

// Run opens a window sized to the stack viewport and ticks once per drawn
// frame until the window is closed, Escape is pressed or ctx is canceled.
func (p *Presenter) Run(ctx context.Context, s *backend.Session) error {
	if s == nil || s.Animator == nil || s.Stack == nil || s.Clock == nil {
		return backend.ErrNoSession
	}
	vp := s.Stack.Viewport()

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(s.Title).
		WithSize(vp.Width, vp.Height).
		WithContinuousRender(true))

	f := &frame{session: s, hud: p.hud}
	var canvas *ggcanvas.Canvas
	var drawErr error

	app.OnDraw(func(dc *gogpu.Context) {
		if ctx.Err() != nil {
			app.Quit()
			return
		}
		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}

		if canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			var err error
			canvas, err = ggcanvas.New(provider, w, h)
			if err != nil {
				drawErr = fmt.Errorf("window: create canvas: %w", err)
				app.Quit()
				return
			}
			spiral.Logger().Info("window: canvas created", "width", w, "height", h)
		}
		if cw, ch := canvas.Size(); cw != w || ch != h {
			if err := canvas.Resize(w, h); err != nil {
				spiral.Logger().Warn("window: resize", "err", err)
			}
		}

		s.Step()
		if err := canvas.Draw(f.draw); err != nil {
			spiral.Logger().Warn("window: draw", "err", err)
		}
		if err := canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
			spiral.Logger().Warn("window: render", "err", err)
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if isQuitKey(key) {
			spiral.Logger().Info("window: quit", "ticks", s.Animator.Progress().Ticks)
			app.Quit()
		}
	})

	app.OnClose(func() {
		gg.CloseAccelerator()
	})

	if err := app.Run(); err != nil {
		return err
	}
	return drawErr
}

func isQuitKey(key gpucontext.Key) bool {
	return key == gpucontext.KeyEscape
}

// frame draws the composited stack, centered, plus the optional HUD.
type frame struct {
	session *backend.Session
	hud     *hud.Overlay
}

func (f *frame) draw(cc *gg.Context) {
	img := f.session.Stack.Frame()
	x, y := center(cc.Width(), cc.Height(), img.Bounds())

	cc.ClearWithColor(gg.Black)
	cc.DrawImage(gg.ImageBufFromImage(img), x, y)

	if f.hud != nil {
		f.hud.Draw(cc, hud.StatusOf(f.session.Animator, f.session.Clock.Elapsed()))
	}
}

// center returns the offset placing r in the middle of a w×h target.
func center(w, h int, r image.Rectangle) (float64, float64) {
	return float64((w - r.Dx()) / 2), float64((h - r.Dy()) / 2)
}
