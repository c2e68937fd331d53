package spiral

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/caarlos0/env/v11"
)

// Configuration errors. Validate wraps them with the offending value.
var (
	ErrInvalidSpeed       = errors.New("spiral: invalid speed")
	ErrInvalidScale       = errors.New("spiral: invalid scale")
	ErrInvalidStrokeWidth = errors.New("spiral: invalid stroke width")
	ErrInvalidCanvas      = errors.New("spiral: invalid canvas size")
	ErrInvalidFrameRate   = errors.New("spiral: invalid frame rate")
	ErrInvalidColor       = errors.New("spiral: invalid color")
	ErrInvalidScheme      = errors.New("spiral: invalid color scheme")
	ErrInvalidMirror      = errors.New("spiral: invalid mirror mode")
)

// Config holds everything an animation reads once at construction.
// Each field can be set from the environment variable named in its tag.
type Config struct {
	// MaxDepth is the number of recursion levels, 1..MaxDepthLimit.
	MaxDepth int `env:"SPIRAL_DEPTH"`

	// Speed multiplies the per-tick angular delta.
	Speed float64 `env:"SPIRAL_SPEED"`

	Scheme     ColorScheme `env:"SPIRAL_COLOR_SCHEME"`
	SolidColor RGB         `env:"SPIRAL_SOLID_COLOR"`

	// Symmetric appends the return pass that retraces the curve.
	Symmetric bool `env:"SPIRAL_SYMMETRIC"`

	Mirror MirrorMode `env:"SPIRAL_MIRROR"`

	// StrokeWidth is the arc line width in pixels.
	StrokeWidth float64 `env:"SPIRAL_STROKE_WIDTH"`

	// Width and Height are the canvas dimensions in pixels.
	Width  int `env:"SPIRAL_WIDTH"`
	Height int `env:"SPIRAL_HEIGHT"`

	// Scale is the number of pixels per world unit.
	Scale float64 `env:"SPIRAL_SCALE"`

	// FrameRate is the target number of ticks per second.
	FrameRate int `env:"SPIRAL_FPS"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		MaxDepth:    7,
		Speed:       1,
		Scheme:      InvDepth,
		SolidColor:  Magenta,
		Symmetric:   true,
		Mirror:      MirrorOpposite,
		StrokeWidth: 1,
		Width:       1200,
		Height:      800,
		Scale:       256,
		FrameRate:   60,
	}
}

// LoadConfigFromEnv returns DefaultConfig overridden by any SPIRAL_*
// environment variables that are set. The result is not validated.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error
	if c.MaxDepth < 1 || c.MaxDepth > MaxDepthLimit {
		errs = append(errs, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidDepth, c.MaxDepth, MaxDepthLimit))
	}
	if !(c.Speed > 0) || math.IsInf(c.Speed, 0) {
		errs = append(errs, fmt.Errorf("%w: %v (want > 0)", ErrInvalidSpeed, c.Speed))
	}
	if c.Scheme < Solid || c.Scheme > InvDepth {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidScheme, int(c.Scheme)))
	}
	if _, ok := mirrorNames[c.Mirror]; !ok {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidMirror, int(c.Mirror)))
	}
	if !(c.StrokeWidth > 0) || math.IsInf(c.StrokeWidth, 0) {
		errs = append(errs, fmt.Errorf("%w: %v (want > 0)", ErrInvalidStrokeWidth, c.StrokeWidth))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, c.Width, c.Height))
	}
	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		errs = append(errs, fmt.Errorf("%w: %v (want > 0)", ErrInvalidScale, c.Scale))
	}
	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d (want > 0)", ErrInvalidFrameRate, c.FrameRate))
	}
	return errors.Join(errs...)
}

// Palette returns the color policy described by c.
func (c Config) Palette() Palette {
	return Palette{
		Scheme:   c.Scheme,
		Solid:    c.SolidColor,
		MaxDepth: c.MaxDepth,
	}
}

// FrameInterval returns the time between two ticks at c.FrameRate.
func (c Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FrameRate)
}
