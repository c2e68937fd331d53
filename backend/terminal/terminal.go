// Package terminal presents the spiral in a terminal using tcell.
//
// Each character cell shows two vertically stacked pixels with the upper
// half block glyph: the foreground paints the upper pixel and the
// background paints the lower one. Frames are downscaled to the cell grid
// with golang.org/x/image/draw.
//
// Importing the package registers the "terminal" backend.
package terminal

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/gogpu/spiral"
	"github.com/gogpu/spiral/backend"
)

// halfBlock is the upper half block glyph.
const halfBlock = '▀'

func init() {
	backend.Register(backend.BackendTerminal, func() backend.Presenter {
		return New()
	})
}

// Presenter draws frames on a tcell screen.
//
// Presenter is NOT safe for concurrent use.
type Presenter struct {
	screen tcell.Screen
	owned  bool

	// cells holds the frame scaled to the cell grid, two pixels per row.
	cells  *image.RGBA
	scaler draw.Scaler
}

// New returns a presenter that opens the terminal when Run is called and
// restores it afterwards.
func New() *Presenter {
	return &Presenter{owned: true, scaler: draw.ApproxBiLinear}
}

// NewWithScreen returns a presenter that draws on an initialized screen.
// The caller keeps ownership of screen.
func NewWithScreen(screen tcell.Screen) *Presenter {
	return &Presenter{screen: screen, scaler: draw.ApproxBiLinear}
}

// Name returns the backend identifier.
func (p *Presenter) Name() string {
	return backend.BackendTerminal
}

// Run shows s until Escape, q or Ctrl-C is pressed or ctx is canceled.
// The last frame stays on screen after the animation finishes.
func (p *Presenter) Run(ctx context.Context, s *backend.Session) error {
	if s == nil || s.Animator == nil || s.Stack == nil || s.Clock == nil {
		return backend.ErrNoSession
	}
	if p.owned && p.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		p.screen = screen
		defer func() {
			screen.Fini()
			p.screen = nil
		}()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := p.pollEvents(ctx)

	interval := s.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	spiral.Logger().Info("terminal: presenting", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuitKey(ev) {
					spiral.Logger().Info("terminal: quit", "ticks", s.Animator.Progress().Ticks)
					return nil
				}
			case *tcell.EventResize:
				p.screen.Sync()
			}

		case <-ticker.C:
			s.Step()
			p.Render(s.Stack.Frame())
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or ctx
// is done.
func (p *Presenter) pollEvents(ctx context.Context) <-chan tcell.Event {
	events := make(chan tcell.Event, 16)
	screen := p.screen
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Render draws frame scaled to the whole screen and shows it.
func (p *Presenter) Render(frame image.Image) {
	cols, rows := p.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}

	r := image.Rect(0, 0, cols, rows*2)
	if p.cells == nil || p.cells.Rect != r {
		p.cells = image.NewRGBA(r)
	}
	p.scaler.Scale(p.cells, r, frame, frame.Bounds(), draw.Src, nil)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			style := tcell.StyleDefault.
				Foreground(cellColor(p.cells.RGBAAt(x, 2*y))).
				Background(cellColor(p.cells.RGBAAt(x, 2*y+1)))
			p.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	p.screen.Show()
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
