// Package layers provides the depth indexed canvas the spiral is drawn on.
//
// A Stack holds one raster context per depth plus a background layer at
// index 0. Arcs land on the layer of the depth that produced them and the
// layers are composited bottom to top when a frame is presented, so deeper
// detail always sits above the coarser curve it refines.
package layers

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/gogpu/spiral"
)

var (
	// ErrInvalidViewport is returned for non-positive sizes or scales.
	ErrInvalidViewport = errors.New("layers: invalid viewport")

	// ErrInvalidDepth is returned when the layer count is out of range.
	ErrInvalidDepth = errors.New("layers: invalid depth")
)

// Viewport maps world coordinates to pixels. The world origin sits at the
// center of the canvas with y pointing up.
type Viewport struct {
	Width, Height int

	// Scale is the number of pixels per world unit.
	Scale float64
}

// ViewportFor returns the viewport described by cfg.
func ViewportFor(cfg spiral.Config) Viewport {
	return Viewport{Width: cfg.Width, Height: cfg.Height, Scale: cfg.Scale}
}

// Validate reports whether vp can back a canvas.
func (vp Viewport) Validate() error {
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidViewport, vp.Width, vp.Height)
	}
	if !(vp.Scale > 0) || math.IsInf(vp.Scale, 0) {
		return fmt.Errorf("%w: scale %v", ErrInvalidViewport, vp.Scale)
	}
	return nil
}

// ToPixel converts a world point to pixel coordinates.
func (vp Viewport) ToPixel(p gg.Point) gg.Point {
	return gg.Pt(
		float64(vp.Width)/2+vp.Scale*p.X,
		float64(vp.Height)/2-vp.Scale*p.Y,
	)
}

// ArcToPixel converts a counter-clockwise world arc [start, end] to the
// angles of the same arc in pixel space, where y points down.
func ArcToPixel(start, end float64) (float64, float64) {
	return -end, -start
}

// Background is the color of layer 0.
var Background = gg.Black

// Stack is a depth indexed set of canvases.
//
// Stack is NOT safe for concurrent use.
type Stack struct {
	vp     Viewport
	layers []*gg.Context
	frame  *image.RGBA
	arcs   []int
}

// New creates a stack with a background layer and one layer per depth
// 1..maxDepth.
func New(maxDepth int, vp Viewport) (*Stack, error) {
	if maxDepth < 1 || maxDepth > spiral.MaxDepthLimit {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidDepth, maxDepth, spiral.MaxDepthLimit)
	}
	if err := vp.Validate(); err != nil {
		return nil, err
	}

	s := &Stack{
		vp:     vp,
		layers: make([]*gg.Context, maxDepth+1),
		frame:  image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height)),
		arcs:   make([]int, maxDepth+1),
	}
	for i := range s.layers {
		dc := gg.NewContext(vp.Width, vp.Height)
		dc.SetLineCap(gg.LineCapRound)
		s.layers[i] = dc
	}
	s.Clear()

	spiral.Logger().Debug("layers: stack created",
		"layers", len(s.layers),
		"width", vp.Width,
		"height", vp.Height,
		"scale", vp.Scale)
	return s, nil
}

// Viewport returns the world to pixel mapping of the stack.
func (s *Stack) Viewport() Viewport { return s.vp }

// Len returns the number of layers including the background.
func (s *Stack) Len() int { return len(s.layers) }

// Layer returns the context backing layer i, or nil if i is out of range.
func (s *Stack) Layer(i int) *gg.Context {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// ArcCount returns how many arcs were stroked on layer i since the last
// Clear.
func (s *Stack) ArcCount(i int) int {
	if i < 0 || i >= len(s.arcs) {
		return 0
	}
	return s.arcs[i]
}

// Clear fills the background layer and makes every depth layer transparent.
func (s *Stack) Clear() {
	for i, dc := range s.layers {
		if i == 0 {
			dc.ClearWithColor(Background)
		} else {
			dc.Clear()
		}
		s.arcs[i] = 0
	}
}

// DrawArc strokes cmd on the layer named by cmd.Layer. It implements
// spiral.Surface.
func (s *Stack) DrawArc(cmd spiral.DrawCommand) {
	dc := s.Layer(cmd.Layer)
	if dc == nil || cmd.Layer == 0 {
		spiral.Logger().Warn("layers: arc dropped", "layer", cmd.Layer, "layers", len(s.layers))
		return
	}
	if !(cmd.End > cmd.Start) {
		return
	}

	c := s.vp.ToPixel(cmd.Center)
	a1, a2 := ArcToPixel(cmd.Start, cmd.End)

	dc.ClearPath()
	dc.DrawArc(c.X, c.Y, cmd.Radius*s.vp.Scale, a1, a2)
	dc.SetColor(cmd.Color)
	dc.SetLineWidth(cmd.Width)
	if err := dc.Stroke(); err != nil {
		spiral.Logger().Warn("layers: stroke failed", "layer", cmd.Layer, "err", err)
		return
	}
	s.arcs[cmd.Layer]++
}

// Composite draws every layer onto dst, background first.
func (s *Stack) Composite(dst draw.Image) {
	for i, dc := range s.layers {
		if err := dc.FlushGPU(); err != nil {
			spiral.Logger().Warn("layers: flush failed", "layer", i, "err", err)
		}
		op := draw.Over
		if i == 0 {
			op = draw.Src
		}
		draw.Draw(dst, dst.Bounds(), dc.Image(), image.Point{}, op)
	}
}

// Frame composites the stack into a buffer owned by the stack and returns
// it. The buffer is overwritten by the next call.
func (s *Stack) Frame() *image.RGBA {
	s.Composite(s.frame)
	return s.frame
}

// LitPixels counts the pixels of img that differ from Background.
func LitPixels(img *image.RGBA) int {
	bg := color.RGBAModel.Convert(Background.Color()).(color.RGBA)
	b := img.Bounds()
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R != bg.R || c.G != bg.G || c.B != bg.B {
				n++
			}
		}
	}
	return n
}

// Close releases the resources held by every layer.
func (s *Stack) Close() error {
	var errs []error
	for i, dc := range s.layers {
		if err := dc.Close(); err != nil {
			errs = append(errs, fmt.Errorf("layer %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
