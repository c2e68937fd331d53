// Package hud draws a one line status overlay describing the animation.
package hud

import (
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/spiral"
)

// ErrNoFont is returned when no usable font file can be found.
var ErrNoFont = errors.New("hud: no font found")

// Status is what the overlay reports.
type Status struct {
	Depth    int
	MaxDepth int
	Step     int
	Steps    int
	Ticks    int
	Elapsed  float64
	Scheme   spiral.ColorScheme
	Finished bool
}

// StatusOf captures the status of a at the given elapsed time.
func StatusOf(a *spiral.Animator, elapsed float64) Status {
	p := a.Progress()
	seq := a.Sequence()
	return Status{
		Depth:    a.Current().Depth,
		MaxDepth: seq.MaxDepth(),
		Step:     min(p.StepIndex+1, seq.Len()),
		Steps:    seq.Len(),
		Ticks:    p.Ticks,
		Elapsed:  elapsed,
		Scheme:   a.Palette().Scheme,
		Finished: p.State == spiral.Finished,
	}
}

// Formatter renders a Status as text with locale aware number grouping.
type Formatter struct {
	p *message.Printer
}

// NewFormatter returns a formatter for tag.
func NewFormatter(tag language.Tag) Formatter {
	return Formatter{p: message.NewPrinter(tag)}
}

// Format returns the status line for st.
func (f Formatter) Format(st Status) string {
	line := f.p.Sprintf("depth %d/%d  step %d/%d  %d ticks  %.1fs  %v",
		st.Depth, st.MaxDepth, st.Step, st.Steps, st.Ticks, st.Elapsed, st.Scheme)
	if st.Finished {
		line += "  done"
	}
	return line
}

// FindFont returns the first existing TTF font among the usual system
// locations, or "" if there is none. TTC collections are not supported.
func FindFont() string {
	candidates := []string{
		// Windows
		"C:\\Windows\\Fonts\\consola.ttf",
		"C:\\Windows\\Fonts\\arial.ttf",
		// macOS
		"/System/Library/Fonts/Monaco.ttf",
		"/System/Library/Fonts/Supplemental/Courier New.ttf",
		"/Library/Fonts/Arial.ttf",
		// Linux
		"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
		"/usr/share/fonts/liberation/LiberationMono-Regular.ttf",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Overlay draws the status line in the bottom left corner of a canvas.
type Overlay struct {
	source *text.FontSource
	face   text.Face
	size   float64
	format Formatter
}

// Load creates an overlay using the font at path, or a system font when
// path is empty.
func Load(path string, size float64) (*Overlay, error) {
	if path == "" {
		path = FindFont()
	}
	if path == "" {
		return nil, ErrNoFont
	}
	source, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("hud: load %s: %w", path, err)
	}
	spiral.Logger().Debug("hud: font loaded", "path", path, "name", source.Name(), "size", size)
	return &Overlay{
		source: source,
		face:   source.Face(size),
		size:   size,
		format: NewFormatter(language.English),
	}, nil
}

// Draw paints st onto dc.
func (o *Overlay) Draw(dc *gg.Context, st Status) {
	line := o.format.Format(st)
	pad := o.size / 2

	dc.SetFont(o.face)
	w, h := dc.MeasureString(line)
	y := float64(dc.Height()) - pad

	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(pad/2, y-h-pad/2, w+pad, h+pad)
	if err := dc.Fill(); err != nil {
		spiral.Logger().Warn("hud: fill failed", "err", err)
	}

	dc.SetRGB(0.9, 0.9, 0.9)
	dc.DrawString(line, pad, y)
}

// Close releases the font.
func (o *Overlay) Close() error {
	return o.source.Close()
}
