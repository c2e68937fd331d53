package spiral

import (
	"fmt"

	"github.com/gogpu/gg"
)

// DeltaFactor is the arc length swept per tick at speed 1, in world units.
// The angular delta of a step is DeltaFactor * speed / radius.
const DeltaFactor = 1.0 / 128

// State is the lifecycle state of an Animator.
type State int

const (
	// Advancing means further ticks emit draw commands.
	Advancing State = iota

	// Finished is terminal: ticks are no-ops.
	Finished
)

func (s State) String() string {
	switch s {
	case Advancing:
		return "advancing"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Rect is an axis-aligned box in world units.
type Rect struct {
	Min, Max gg.Point
}

// DrawCommand asks a Surface to stroke one arc.
//
// Angles are in radians, 0 along +x and increasing counter-clockwise,
// with Start <= End always.
type DrawCommand struct {
	// Layer is the depth of the step the arc belongs to.
	Layer int

	Color  RGB
	Center gg.Point
	Radius float64
	Start  float64
	End    float64

	// Width is the stroke width in pixels.
	Width float64
}

// Bounds returns the bounding box of the full circle the arc lies on.
func (c DrawCommand) Bounds() Rect {
	return Rect{
		Min: gg.Pt(c.Center.X-c.Radius, c.Center.Y-c.Radius),
		Max: gg.Pt(c.Center.X+c.Radius, c.Center.Y+c.Radius),
	}
}

// Surface receives the draw commands emitted by an Animator.
type Surface interface {
	DrawArc(cmd DrawCommand)
}

// SurfaceFunc adapts a function to the Surface interface.
type SurfaceFunc func(cmd DrawCommand)

// DrawArc implements Surface.
func (f SurfaceFunc) DrawArc(cmd DrawCommand) { f(cmd) }

// Progress is a snapshot of how far an Animator has drawn.
type Progress struct {
	// StepIndex indexes the Sequence. It equals Sequence.Len once finished.
	StepIndex int

	// Previous and Current bound the interval swept by the last tick.
	Previous float64
	Current  float64

	// Ticks counts the ticks that emitted draw commands.
	Ticks int

	State State
}

// Animator is the incremental draw state machine. Every tick it sweeps the
// current step a little further, emits one arc per mirrored quadrant, and
// moves on to the next step once the half turn is complete.
//
// Animator is NOT safe for concurrent use.
type Animator struct {
	seq      Sequence
	palette  Palette
	mirror   MirrorMode
	speed    float64
	width    float64
	progress Progress
}

// New creates an Animator from DefaultConfig with opts applied.
func New(opts ...Option) (*Animator, error) {
	cfg := NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seq, err := Generate(cfg.MaxDepth, cfg.Symmetric)
	if err != nil {
		return nil, err
	}
	return NewAnimator(seq, cfg)
}

// NewAnimator creates an Animator positioned at the first step of seq.
// The depth and symmetry of seq take precedence over those in cfg.
func NewAnimator(seq Sequence, cfg Config) (*Animator, error) {
	if seq.Len() == 0 {
		return nil, fmt.Errorf("%w: empty sequence", ErrInvalidDepth)
	}
	cfg.MaxDepth = seq.MaxDepth()
	cfg.Symmetric = seq.Symmetric()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	first := seq.At(0)
	a := &Animator{
		seq:     seq,
		palette: cfg.Palette(),
		mirror:  cfg.Mirror,
		speed:   cfg.Speed,
		width:   cfg.StrokeWidth,
		progress: Progress{
			Previous: first.BaseAngle,
			Current:  first.BaseAngle,
		},
	}
	Logger().Info("spiral: animation created",
		"depth", seq.MaxDepth(),
		"steps", seq.Len(),
		"symmetric", seq.Symmetric(),
		"scheme", cfg.Scheme,
		"mirror", cfg.Mirror)
	return a, nil
}

// Tick advances the animation by one frame and sends the newly swept arcs
// to dst. elapsed is the animation time in seconds; it only affects the Time
// color scheme. dst may be nil to advance without drawing.
//
// Once the last step is complete Tick returns Finished and does nothing.
func (a *Animator) Tick(elapsed float64, dst Surface) State {
	p := &a.progress
	if p.State == Finished {
		return Finished
	}

	step := a.seq.At(p.StepIndex)
	target := step.Target()
	delta := float64(step.Direction) * DeltaFactor * a.speed / step.Radius

	p.Previous = p.Current
	p.Current += delta
	if (step.Direction > 0 && p.Current > target) || (step.Direction < 0 && p.Current < target) {
		p.Current = target
	}
	p.Ticks++

	if dst != nil {
		lo, hi := min(p.Previous, p.Current), max(p.Previous, p.Current)
		for _, pl := range Mirror(step, a.mirror) {
			dst.DrawArc(DrawCommand{
				Layer:  step.Depth,
				Color:  a.palette.ColorFor(step, elapsed, p.Current+pl.Offset),
				Center: pl.Center,
				Radius: step.Radius,
				Start:  lo + pl.Offset,
				End:    hi + pl.Offset,
				Width:  a.width,
			})
		}
	}

	if p.Current == target {
		a.advance()
	}
	return p.State
}

// advance moves to the next step, or finishes after the last one.
func (a *Animator) advance() {
	p := &a.progress
	p.StepIndex++
	if p.StepIndex >= a.seq.Len() {
		p.State = Finished
		Logger().Info("spiral: animation finished", "ticks", p.Ticks)
		return
	}

	next := a.seq.At(p.StepIndex)
	p.Previous = next.BaseAngle
	p.Current = next.BaseAngle
	Logger().Debug("spiral: step",
		"index", p.StepIndex,
		"depth", next.Depth,
		"direction", next.Direction,
		"radius", next.Radius)
}

// Progress returns a snapshot of the current progress.
func (a *Animator) Progress() Progress { return a.progress }

// Sequence returns the sequence being drawn.
func (a *Animator) Sequence() Sequence { return a.seq }

// Current returns the step being drawn, or the last step once finished.
func (a *Animator) Current() Step {
	return a.seq.At(min(a.progress.StepIndex, a.seq.Len()-1))
}

// Done reports whether the animation has finished.
func (a *Animator) Done() bool { return a.progress.State == Finished }

// Palette returns the color policy used for draw commands.
func (a *Animator) Palette() Palette { return a.palette }
