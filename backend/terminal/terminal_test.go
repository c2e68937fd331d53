package terminal

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/spiral"
	"github.com/gogpu/spiral/backend"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func newSession(t *testing.T) *backend.Session {
	t.Helper()
	cfg := spiral.NewConfig(
		spiral.WithDepth(1),
		spiral.WithSymmetric(false),
		spiral.WithSpeed(64),
		spiral.WithCanvasSize(32, 32),
		spiral.WithScale(8),
		spiral.WithFrameRate(1000),
	)
	s, err := backend.NewSession(cfg, spiral.NewFrameClock(1000))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func cellAt(t *testing.T, screen tcell.SimulationScreen, x, y int) (rune, tcell.Color, tcell.Color) {
	t.Helper()
	cells, w, _ := screen.GetContents()
	cell := cells[y*w+x]
	fg, bg, _ := cell.Style.Decompose()
	var r rune
	if len(cell.Runes) > 0 {
		r = cell.Runes[0]
	}
	return r, fg, bg
}

func TestRenderHalfBlocks(t *testing.T) {
	screen := newScreen(t, 4, 4)
	p := NewWithScreen(screen)

	// Same size as the cell grid so no resampling happens: rows 0..2 red,
	// rows 3..7 blue. Cell row 1 straddles the boundary.
	frame := image.NewRGBA(image.Rect(0, 0, 4, 8))
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	draw.Draw(frame, image.Rect(0, 0, 4, 3), &image.Uniform{C: red}, image.Point{}, draw.Src)
	draw.Draw(frame, image.Rect(0, 3, 4, 8), &image.Uniform{C: blue}, image.Point{}, draw.Src)

	p.Render(frame)

	tests := []struct {
		row    int
		fg, bg tcell.Color
	}{
		{0, cellColor(red), cellColor(red)},
		{1, cellColor(red), cellColor(blue)},
		{2, cellColor(blue), cellColor(blue)},
		{3, cellColor(blue), cellColor(blue)},
	}
	for _, tt := range tests {
		for x := range 4 {
			r, fg, bg := cellAt(t, screen, x, tt.row)
			if r != halfBlock {
				t.Errorf("cell (%d,%d) rune = %q, want %q", x, tt.row, r, halfBlock)
			}
			if fg != tt.fg || bg != tt.bg {
				t.Errorf("cell (%d,%d) = fg %v bg %v, want fg %v bg %v", x, tt.row, fg, bg, tt.fg, tt.bg)
			}
		}
	}
}

func TestRenderScalesToScreen(t *testing.T) {
	screen := newScreen(t, 10, 5)
	p := NewWithScreen(screen)

	green := color.RGBA{0, 200, 0, 255}
	frame := image.NewRGBA(image.Rect(0, 0, 300, 200))
	draw.Draw(frame, frame.Bounds(), &image.Uniform{C: green}, image.Point{}, draw.Src)

	p.Render(frame)
	if p.cells.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Errorf("cell buffer = %v, want 10x10", p.cells.Bounds())
	}
	for _, pt := range []image.Point{{0, 0}, {9, 4}, {5, 2}} {
		if _, fg, bg := cellAt(t, screen, pt.X, pt.Y); fg != cellColor(green) || bg != cellColor(green) {
			t.Errorf("cell %v = fg %v bg %v, want green", pt, fg, bg)
		}
	}

	// A resize reallocates the buffer.
	screen.SetSize(6, 3)
	p.Render(frame)
	if p.cells.Bounds() != image.Rect(0, 0, 6, 6) {
		t.Errorf("cell buffer after resize = %v, want 6x6", p.cells.Bounds())
	}
}

func TestIsQuitKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"Q", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModShift), true},
		{"x", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuitKey(tt.ev); got != tt.want {
				t.Errorf("isQuitKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunUntilQuit(t *testing.T) {
	screen := newScreen(t, 16, 8)
	s := newSession(t)

	finished := make(chan struct{})
	s.Observe(func(p spiral.Progress, _ spiral.Step) {
		if p.State == spiral.Finished {
			close(finished)
		}
	})

	done := make(chan error, 1)
	go func() {
		done <- NewWithScreen(screen).Run(context.Background(), s)
	}()

	select {
	case <-finished:
	case <-time.After(10 * time.Second):
		t.Fatal("animation did not finish")
	}
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run() did not return after q")
	}

	if !s.Animator.Done() {
		t.Error("animation should be finished")
	}
	// The arc sweeps through the right half of the canvas, so the frame on
	// screen is no longer uniformly black.
	cells, _, _ := screen.GetContents()
	lit := 0
	black := cellColor(color.RGBA{A: 255})
	for _, c := range cells {
		if fg, bg, _ := c.Style.Decompose(); fg != black || bg != black {
			lit++
		}
	}
	if lit == 0 {
		t.Error("no lit cells after the animation")
	}
}

func TestRunCanceled(t *testing.T) {
	screen := newScreen(t, 8, 4)
	s := newSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewWithScreen(screen).Run(ctx, s); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestRunNoSession(t *testing.T) {
	p := NewWithScreen(newScreen(t, 4, 4))
	if err := p.Run(context.Background(), nil); err != backend.ErrNoSession {
		t.Errorf("Run(nil) error = %v, want ErrNoSession", err)
	}
}

func TestRegistered(t *testing.T) {
	p := backend.Get(backend.BackendTerminal)
	if p == nil {
		t.Fatal("terminal backend is not registered")
	}
	if p.Name() != "terminal" {
		t.Errorf("Name() = %q", p.Name())
	}
	if d := backend.Default(); d.Name() != "terminal" {
		t.Errorf("Default() = %q, want terminal", d.Name())
	}
}
