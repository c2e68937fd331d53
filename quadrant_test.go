package spiral

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func TestMirrorModes(t *testing.T) {
	tests := []struct {
		mode MirrorMode
		want []Quadrant
	}{
		{MirrorSingle, []Quadrant{North}},
		{MirrorOpposite, []Quadrant{East, West}},
		{MirrorAll, []Quadrant{North, East, South, West}},
	}

	step := Step{Depth: 2, Direction: 1, BaseAngle: math.Pi / 2, Radius: 0.5, Center: gg.Pt(0, 1.5)}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got := Mirror(step, tt.mode)
			if len(got) != len(tt.want) {
				t.Fatalf("Mirror() returned %d placements, want %d", len(got), len(tt.want))
			}
			for i, pl := range got {
				if pl.Quadrant != tt.want[i] {
					t.Errorf("placement %d quadrant = %v, want %v", i, pl.Quadrant, tt.want[i])
				}
				if pl.Offset != tt.want[i].Angle() {
					t.Errorf("placement %d offset = %v, want %v", i, pl.Offset, tt.want[i].Angle())
				}
			}
		})
	}
}

func TestMirrorRotatesCenter(t *testing.T) {
	step := Step{Depth: 1, Direction: 1, BaseAngle: -math.Pi / 2, Radius: 1, Center: gg.Pt(0, 1)}
	want := map[Quadrant]gg.Point{
		North: gg.Pt(0, 1),
		East:  gg.Pt(-1, 0),
		South: gg.Pt(0, -1),
		West:  gg.Pt(1, 0),
	}
	for _, pl := range Mirror(step, MirrorAll) {
		if !nearPt(pl.Center, want[pl.Quadrant]) {
			t.Errorf("%v center = %v, want %v", pl.Quadrant, pl.Center, want[pl.Quadrant])
		}
	}
}

// A rotated copy of a step must pass through the rotated points of the
// unrotated arc.
func TestMirrorPreservesArcShape(t *testing.T) {
	step := Step{Depth: 3, Direction: -1, BaseAngle: -math.Pi / 2, Radius: 0.25, Center: gg.Pt(0, 0.75)}
	for _, pl := range Mirror(step, MirrorAll) {
		rot := gg.Rotate(pl.Offset)
		for _, a := range []float64{step.BaseAngle, 0.3, step.Target()} {
			want := rot.TransformPoint(step.PointAt(a))
			copyStep := step
			copyStep.Center = pl.Center
			if got := copyStep.PointAt(a + pl.Offset); !nearPt(got, want) {
				t.Errorf("%v at %v: %v, want %v", pl.Quadrant, a, got, want)
			}
		}
	}
}

func TestMirrorModeText(t *testing.T) {
	for _, mode := range []MirrorMode{MirrorSingle, MirrorOpposite, MirrorAll} {
		text, err := mode.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) = %v", mode, err)
		}
		var got MirrorMode
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) = %v", text, err)
		}
		if got != mode {
			t.Errorf("round trip of %v gave %v", mode, got)
		}
	}

	var m MirrorMode
	if err := m.UnmarshalText([]byte("diagonal")); err == nil {
		t.Error("UnmarshalText(diagonal) succeeded, want error")
	}
	if _, err := MirrorMode(9).MarshalText(); err == nil {
		t.Error("MarshalText(9) succeeded, want error")
	}
}

func TestQuadrantString(t *testing.T) {
	if got := West.String(); got != "west" {
		t.Errorf("West.String() = %q, want west", got)
	}
	if got := Quadrant(7).String(); got != "Quadrant(7)" {
		t.Errorf("Quadrant(7).String() = %q", got)
	}
}
