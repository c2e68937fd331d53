package spiral

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
)

// Quadrant names one of the four rotated copies of a step.
// The value k rotates the copy by k·π/2 about the world origin.
type Quadrant int

const (
	North Quadrant = iota
	East
	South
	West
)

var quadrantNames = [...]string{"north", "east", "south", "west"}

func (q Quadrant) String() string {
	if q < North || q > West {
		return fmt.Sprintf("Quadrant(%d)", int(q))
	}
	return quadrantNames[q]
}

// Angle returns the rotation of q in radians.
func (q Quadrant) Angle() float64 {
	return float64(q) * math.Pi / 2
}

// MirrorMode selects which quadrant copies are drawn for every step.
type MirrorMode int

const (
	// MirrorOpposite draws the East and West copies.
	MirrorOpposite MirrorMode = iota

	// MirrorSingle draws only the unrotated North copy.
	MirrorSingle

	// MirrorAll draws all four copies.
	MirrorAll
)

var mirrorQuadrants = map[MirrorMode][]Quadrant{
	MirrorOpposite: {East, West},
	MirrorSingle:   {North},
	MirrorAll:      {North, East, South, West},
}

var mirrorNames = map[MirrorMode]string{
	MirrorOpposite: "opposite",
	MirrorSingle:   "single",
	MirrorAll:      "all",
}

func (m MirrorMode) String() string {
	if name, ok := mirrorNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MirrorMode(%d)", int(m))
}

// Quadrants returns the copies drawn in mode m, ordered by quadrant.
func (m MirrorMode) Quadrants() []Quadrant {
	return mirrorQuadrants[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m MirrorMode) MarshalText() ([]byte, error) {
	name, ok := mirrorNames[m]
	if !ok {
		return nil, fmt.Errorf("spiral: unknown mirror mode %d", int(m))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MirrorMode) UnmarshalText(text []byte) error {
	for mode, name := range mirrorNames {
		if name == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("spiral: unknown mirror mode %q (want single, opposite or all)", text)
}

// Placement is one physical copy of a logical step.
type Placement struct {
	Quadrant Quadrant

	// Center is the step center rotated about the origin.
	Center gg.Point

	// Offset is added to every angle of the step.
	Offset float64
}

// Mirror derives the rotated copies of step drawn in mode.
func Mirror(step Step, mode MirrorMode) []Placement {
	quads := mode.Quadrants()
	out := make([]Placement, 0, len(quads))
	for _, q := range quads {
		offset := q.Angle()
		out = append(out, Placement{
			Quadrant: q,
			Center:   gg.Rotate(offset).TransformPoint(step.Center),
			Offset:   offset,
		})
	}
	return out
}
