package spiral

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit color. Every channel is always within [0, 255].
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHexColor parses "#rgb" or "#rrggbb" into an RGB value.
// The leading "#" is optional.
func ParseHexColor(s string) (RGB, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := ParseHexColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Common colors
var (
	Black   = RGB{0, 0, 0}
	White   = RGB{255, 255, 255}
	Magenta = RGB{255, 0, 255}
)

// ColorScheme selects how stroke colors are derived from the drawing state.
type ColorScheme int

const (
	// Solid uses one configured color.
	Solid ColorScheme = iota

	// Time cycles the three channels over elapsed time, 120° apart.
	Time

	// Angle maps the current sweep angle to a hue.
	Angle

	// Depth makes deep arcs bright and shallow arcs dim.
	Depth

	// InvDepth makes shallow arcs bright and deep arcs dim.
	InvDepth
)

// ColorSchemes lists every scheme in declaration order.
var ColorSchemes = []ColorScheme{Solid, Time, Angle, Depth, InvDepth}

var schemeNames = [...]string{"solid", "time", "angle", "depth", "inv-depth"}

func (s ColorScheme) String() string {
	if s < Solid || s > InvDepth {
		return fmt.Sprintf("ColorScheme(%d)", int(s))
	}
	return schemeNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s ColorScheme) MarshalText() ([]byte, error) {
	if s < Solid || s > InvDepth {
		return nil, fmt.Errorf("spiral: unknown color scheme %d", int(s))
	}
	return []byte(schemeNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ColorScheme) UnmarshalText(text []byte) error {
	for i, name := range schemeNames {
		if name == string(text) {
			*s = ColorScheme(i)
			return nil
		}
	}
	return fmt.Errorf("spiral: unknown color scheme %q", text)
}

// Brightness ramp of the depth schemes: floor + span·t for t in [0, 1].
const (
	depthFloor = 25
	depthSpan  = 230
)

// Palette maps the drawing state to a stroke color.
// The zero value paints every arc black with the Solid scheme.
type Palette struct {
	Scheme   ColorScheme
	Solid    RGB
	MaxDepth int
}

// ColorFor returns the color of step at elapsed seconds and sweep angle.
//
// ColorFor is pure and defined for every input: depths outside
// [0, MaxDepth] are clamped, and non-finite times or angles are treated as 0.
func (p Palette) ColorFor(step Step, elapsed, angle float64) RGB {
	switch p.Scheme {
	case Depth:
		return gray(p.depthRatio(step.Depth))
	case InvDepth:
		return gray(1 - p.depthRatio(step.Depth))
	case Time:
		return timeColor(finite(elapsed))
	case Angle:
		return angleColor(finite(angle))
	default:
		return p.Solid
	}
}

func (p Palette) depthRatio(depth int) float64 {
	if p.MaxDepth <= 0 {
		return 0
	}
	return min(max(float64(depth)/float64(p.MaxDepth), 0), 1)
}

func gray(t float64) RGB {
	v := channel(depthFloor + depthSpan*t)
	return RGB{v, v, v}
}

func timeColor(t float64) RGB {
	wave := func(phase float64) uint8 {
		return channel((math.Sin(t+phase) + 1) / 2 * 255)
	}
	return RGB{
		R: wave(0),
		G: wave(2 * math.Pi / 3),
		B: wave(4 * math.Pi / 3),
	}
}

func angleColor(angle float64) RGB {
	r, g, b := colorful.Hsv(normalizeDegrees(angle), 1, 1).RGB255()
	return RGB{r, g, b}
}

// normalizeDegrees converts radians to degrees in [0, 360).
func normalizeDegrees(angle float64) float64 {
	deg := math.Mod(angle*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// channel truncates x to an 8-bit channel value.
func channel(x float64) uint8 {
	return uint8(min(max(x, 0), 255))
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
