package spiral

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/gogpu/gg"
)

// MaxDepthLimit is the deepest recursion level Generate accepts.
// A pass holds 2^depth - 1 steps, so depth 16 already yields 65535 arcs.
const MaxDepthLimit = 16

// ErrInvalidDepth is returned when a recursion depth is outside [1, MaxDepthLimit].
var ErrInvalidDepth = errors.New("spiral: invalid depth")

// Step is one arc segment of the curve.
//
// The arc belongs to a circle of Radius around Center and sweeps a half turn,
// starting at BaseAngle and ending at BaseAngle + Direction*π.
type Step struct {
	// Depth is the recursion level, starting at 1. It is also the layer index.
	Depth int

	// Direction is +1 for a counter-clockwise sweep and -1 for clockwise.
	Direction int

	// BaseAngle is the start angle of the sweep in radians (±π/2).
	BaseAngle float64

	// Radius halves with each depth level.
	Radius float64

	// Center lies on the vertical axis in world space.
	Center gg.Point
}

// Target returns the angle at which the sweep of s ends.
func (s Step) Target() float64 {
	return s.BaseAngle + float64(s.Direction)*math.Pi
}

// PointAt returns the world-space point on the circle of s at angle.
func (s Step) PointAt(angle float64) gg.Point {
	sin, cos := math.Sincos(angle)
	return gg.Pt(s.Center.X+s.Radius*cos, s.Center.Y+s.Radius*sin)
}

// Start returns the point where the sweep of s begins.
func (s Step) Start() gg.Point { return s.PointAt(s.BaseAngle) }

// End returns the point where the sweep of s ends.
func (s Step) End() gg.Point { return s.PointAt(s.Target()) }

// Radius returns the arc radius used at depth: 1 / 2^(depth-1).
func Radius(depth int) float64 {
	return math.Ldexp(1, 1-depth)
}

// ArcCount returns the number of steps at depth within one pass: 2^depth / 2.
func ArcCount(depth int) int {
	return (1 << depth) / 2
}

// Sequence is the ordered, immutable list of steps describing the whole curve.
//
// A Sequence is never modified after Generate returns it and may be read
// from multiple goroutines without synchronization.
type Sequence struct {
	steps      []Step
	maxDepth   int
	symmetric  bool
	forwardLen int
}

// Generate builds the step sequence for maxDepth recursion levels.
//
// The first pass walks depths 1..maxDepth. When symmetric is true a return
// pass follows that walks maxDepth..1 with base angles, directions and axis
// offsets inverted, so the animation closes back on its starting point.
//
// Generate is pure: identical arguments always produce identical sequences.
func Generate(maxDepth int, symmetric bool) (Sequence, error) {
	if maxDepth < 1 || maxDepth > MaxDepthLimit {
		return Sequence{}, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidDepth, maxDepth, MaxDepthLimit)
	}

	forward := (1 << maxDepth) - 1
	total := forward
	if symmetric {
		total *= 2
	}

	steps := make([]Step, 0, total)
	for depth := 1; depth <= maxDepth; depth++ {
		steps = appendDepth(steps, depth, false)
	}
	if symmetric {
		for depth := maxDepth; depth >= 1; depth-- {
			steps = appendDepth(steps, depth, true)
		}
	}

	return Sequence{
		steps:      steps,
		maxDepth:   maxDepth,
		symmetric:  symmetric,
		forwardLen: forward,
	}, nil
}

// appendDepth appends every arc of one depth level. On the return pass the
// roles of odd and even depths are swapped.
func appendDepth(steps []Step, depth int, reverse bool) []Step {
	radius := Radius(depth)
	even := depth%2 == 0
	if reverse {
		even = !even
	}

	baseAngle := -math.Pi / 2
	if even {
		baseAngle = math.Pi / 2
	}

	for i := range ArcCount(depth) {
		offset := radius * float64(1+2*i)
		y := offset
		if even {
			y = 2 - offset
		}
		steps = append(steps, Step{
			Depth:     depth,
			Direction: arcDirection(depth, i, reverse),
			BaseAngle: baseAngle,
			Radius:    radius,
			Center:    gg.Pt(0, y),
		})
	}
	return steps
}

// arcDirection alternates the sweep with the arc index and the depth parity
// so that consecutive arcs meet tangentially. The outermost arc always sweeps
// counter-clockwise; on the return pass that closes the loop on the far side.
func arcDirection(depth, i int, reverse bool) int {
	if depth == 1 {
		return 1
	}
	dir := -1
	if (depth%2 == 0) != (i%2 == 1) {
		dir = 1
	}
	if reverse {
		dir = -dir
	}
	return dir
}

// Len returns the number of steps.
func (s Sequence) Len() int { return len(s.steps) }

// At returns the i-th step. It panics if i is out of range.
func (s Sequence) At(i int) Step { return s.steps[i] }

// Steps returns a copy of all steps in order.
func (s Sequence) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// All iterates over the steps with their indices.
func (s Sequence) All() iter.Seq2[int, Step] {
	return func(yield func(int, Step) bool) {
		for i, st := range s.steps {
			if !yield(i, st) {
				return
			}
		}
	}
}

// MaxDepth returns the deepest recursion level of the sequence.
func (s Sequence) MaxDepth() int { return s.maxDepth }

// Symmetric reports whether the sequence includes the return pass.
func (s Sequence) Symmetric() bool { return s.symmetric }

// ForwardLen returns the number of steps in the first pass.
// The return pass, if any, starts at this index.
func (s Sequence) ForwardLen() int { return s.forwardLen }
