package spiral

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func mustGenerate(t *testing.T, depth int, symmetric bool) Sequence {
	t.Helper()
	seq, err := Generate(depth, symmetric)
	if err != nil {
		t.Fatalf("Generate(%d, %v) = %v", depth, symmetric, err)
	}
	return seq
}

func TestGenerateDepthTwo(t *testing.T) {
	seq := mustGenerate(t, 2, false)

	want := []Step{
		{Depth: 1, Direction: 1, BaseAngle: -math.Pi / 2, Radius: 1, Center: gg.Pt(0, 1)},
		{Depth: 2, Direction: 1, BaseAngle: math.Pi / 2, Radius: 0.5, Center: gg.Pt(0, 1.5)},
		{Depth: 2, Direction: -1, BaseAngle: math.Pi / 2, Radius: 0.5, Center: gg.Pt(0, 0.5)},
	}
	diff(t, want, seq.Steps(), approx)

	if seq.ForwardLen() != 3 {
		t.Errorf("ForwardLen() = %d, want 3", seq.ForwardLen())
	}
	if seq.MaxDepth() != 2 || seq.Symmetric() {
		t.Errorf("MaxDepth(), Symmetric() = %d, %v, want 2, false", seq.MaxDepth(), seq.Symmetric())
	}
}

func TestGenerateInvalidDepth(t *testing.T) {
	for _, depth := range []int{-1, 0, MaxDepthLimit + 1} {
		_, err := Generate(depth, false)
		if !errors.Is(err, ErrInvalidDepth) {
			t.Errorf("Generate(%d) error = %v, want ErrInvalidDepth", depth, err)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, symmetric := range []bool{false, true} {
		a := mustGenerate(t, 6, symmetric)
		b := mustGenerate(t, 6, symmetric)
		diff(t, a.Steps(), b.Steps())
	}
}

func TestGenerateCounts(t *testing.T) {
	const maxDepth = 8
	seq := mustGenerate(t, maxDepth, true)

	forward := map[int]int{}
	back := map[int]int{}
	for i, st := range seq.All() {
		if i < seq.ForwardLen() {
			forward[st.Depth]++
		} else {
			back[st.Depth]++
		}
	}

	for d := 1; d <= maxDepth; d++ {
		want := int(math.Pow(2, float64(d))) / 2
		if forward[d] != want {
			t.Errorf("forward pass depth %d: %d steps, want %d", d, forward[d], want)
		}
		if back[d] != want {
			t.Errorf("return pass depth %d: %d steps, want %d", d, back[d], want)
		}
		if ArcCount(d) != want {
			t.Errorf("ArcCount(%d) = %d, want %d", d, ArcCount(d), want)
		}
	}
	if seq.Len() != 2*seq.ForwardLen() {
		t.Errorf("Len() = %d, want %d", seq.Len(), 2*seq.ForwardLen())
	}
}

func TestRadiusHalvesPerDepth(t *testing.T) {
	if Radius(1) != 1 {
		t.Errorf("Radius(1) = %v, want 1", Radius(1))
	}
	for d := 2; d <= MaxDepthLimit; d++ {
		if got, want := Radius(d), Radius(d-1)/2; got != want {
			t.Errorf("Radius(%d) = %v, want %v", d, got, want)
		}
	}

	seq := mustGenerate(t, 10, true)
	for i, st := range seq.All() {
		if st.Radius != Radius(st.Depth) {
			t.Errorf("step %d: radius %v, want %v", i, st.Radius, Radius(st.Depth))
		}
	}
}

func TestGenerateCentersTileAxis(t *testing.T) {
	seq := mustGenerate(t, 7, false)

	lo := map[int]float64{}
	hi := map[int]float64{}
	cover := map[int]float64{}
	for _, st := range seq.All() {
		if st.Center.X != 0 {
			t.Fatalf("center %v is off the vertical axis", st.Center)
		}
		if _, ok := lo[st.Depth]; !ok {
			lo[st.Depth], hi[st.Depth] = math.Inf(1), math.Inf(-1)
		}
		lo[st.Depth] = min(lo[st.Depth], st.Center.Y-st.Radius)
		hi[st.Depth] = max(hi[st.Depth], st.Center.Y+st.Radius)
		cover[st.Depth] += 2 * st.Radius
	}
	for d := 1; d <= 7; d++ {
		if !near(lo[d], 0) || !near(hi[d], 2) || !near(cover[d], 2) {
			t.Errorf("depth %d spans [%v, %v] covering %v, want [0, 2] covering 2", d, lo[d], hi[d], cover[d])
		}
	}
}

// Every step must start where the previous one ended, across depths and
// across the turn into the return pass.
func TestGenerateContinuity(t *testing.T) {
	for _, symmetric := range []bool{false, true} {
		for depth := 1; depth <= 9; depth++ {
			seq := mustGenerate(t, depth, symmetric)
			for i := 1; i < seq.Len(); i++ {
				prev, next := seq.At(i-1), seq.At(i)
				if !nearPt(prev.End(), next.Start()) {
					t.Fatalf("depth=%d symmetric=%v: step %d ends at %v, step %d starts at %v",
						depth, symmetric, i-1, prev.End(), i, next.Start())
				}
			}
		}
	}
}

// Tangents at a joint must be parallel so the curve has no kinks.
func TestGenerateTangentContinuity(t *testing.T) {
	tangent := func(st Step, angle float64) gg.Point {
		sin, cos := math.Sincos(angle)
		d := float64(st.Direction)
		return gg.Pt(-sin*d, cos*d)
	}

	seq := mustGenerate(t, 6, true)
	for i := 1; i < seq.Len(); i++ {
		prev, next := seq.At(i-1), seq.At(i)
		out := tangent(prev, prev.Target())
		in := tangent(next, next.BaseAngle)
		if cross := out.X*in.Y - out.Y*in.X; !near(cross, 0) {
			t.Errorf("joint %d: tangents %v and %v are not parallel", i, out, in)
		}
	}
}

func TestGenerateSymmetricClosesLoop(t *testing.T) {
	seq := mustGenerate(t, 5, true)
	first, last := seq.At(0), seq.At(seq.Len()-1)
	if !nearPt(first.Start(), last.End()) {
		t.Errorf("curve starts at %v but ends at %v", first.Start(), last.End())
	}
	// The outermost return arc sweeps the far side, not the same half circle.
	if last.Depth != 1 || last.BaseAngle != math.Pi/2 || last.Direction != 1 {
		t.Errorf("last step = %+v, want depth 1 at +π/2 sweeping counter-clockwise", last)
	}
}

func TestGenerateSymmetricRoundTrip(t *testing.T) {
	type key struct {
		depth int
		y     float64
	}
	seq := mustGenerate(t, 7, true)
	steps := seq.Steps()
	forward := steps[:seq.ForwardLen()]
	back := steps[seq.ForwardLen():]

	set := func(steps []Step) map[key]int {
		m := map[key]int{}
		for _, st := range steps {
			m[key{st.Depth, math.Round(st.Center.Y * 1e9)}]++
		}
		return m
	}

	reversed := make([]Step, len(back))
	for i, st := range back {
		reversed[len(back)-1-i] = st
	}
	diff(t, set(forward), set(reversed))

	// Depth order of the return pass mirrors the forward pass.
	for i := range back {
		if back[i].Depth != forward[len(forward)-1-i].Depth {
			t.Fatalf("return step %d has depth %d, want %d", i, back[i].Depth, forward[len(forward)-1-i].Depth)
		}
	}
}

func TestSequenceStepsIsCopy(t *testing.T) {
	seq := mustGenerate(t, 3, false)
	steps := seq.Steps()
	steps[0].Radius = 42
	if seq.At(0).Radius == 42 {
		t.Error("modifying Steps() result changed the sequence")
	}
}

func TestSequenceAllStopsEarly(t *testing.T) {
	seq := mustGenerate(t, 4, false)
	n := 0
	for range seq.All() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("iterated %d steps, want 3", n)
	}
}

func TestStepEndpoints(t *testing.T) {
	st := Step{Depth: 1, Direction: 1, BaseAngle: -math.Pi / 2, Radius: 1, Center: gg.Pt(0, 1)}
	if !nearPt(st.Start(), gg.Pt(0, 0)) {
		t.Errorf("Start() = %v, want (0, 0)", st.Start())
	}
	if !nearPt(st.End(), gg.Pt(0, 2)) {
		t.Errorf("End() = %v, want (0, 2)", st.End())
	}
	if !nearPt(st.PointAt(0), gg.Pt(1, 1)) {
		t.Errorf("PointAt(0) = %v, want (1, 1)", st.PointAt(0))
	}
	if st.Target() != math.Pi/2 {
		t.Errorf("Target() = %v, want π/2", st.Target())
	}
}
