package spiral

// Option configures an animation during creation.
//
// Example:
//
//	// Reference animation
//	a, err := spiral.New()
//
//	// Deeper curve, hue follows the sweep angle, all four quadrants
//	a, err := spiral.New(
//	    spiral.WithDepth(9),
//	    spiral.WithColorScheme(spiral.Angle),
//	    spiral.WithMirror(spiral.MirrorAll),
//	)
type Option func(*Config)

// NewConfig returns DefaultConfig with opts applied in order.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	return cfg
}

// Apply applies opts to c in order.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// WithDepth sets the number of recursion levels.
func WithDepth(depth int) Option {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

// WithSpeed sets the multiplier on the per-tick angular delta.
func WithSpeed(speed float64) Option {
	return func(c *Config) {
		c.Speed = speed
	}
}

// WithColorScheme selects the stroke color policy.
func WithColorScheme(scheme ColorScheme) Option {
	return func(c *Config) {
		c.Scheme = scheme
	}
}

// WithSolidColor sets the color used by the Solid scheme.
func WithSolidColor(col RGB) Option {
	return func(c *Config) {
		c.SolidColor = col
	}
}

// WithSymmetric enables or disables the return pass.
func WithSymmetric(symmetric bool) Option {
	return func(c *Config) {
		c.Symmetric = symmetric
	}
}

// WithMirror selects which quadrant copies are drawn.
func WithMirror(mode MirrorMode) Option {
	return func(c *Config) {
		c.Mirror = mode
	}
}

// WithStrokeWidth sets the arc line width in pixels.
func WithStrokeWidth(width float64) Option {
	return func(c *Config) {
		c.StrokeWidth = width
	}
}

// WithCanvasSize sets the canvas dimensions in pixels.
func WithCanvasSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithScale sets the number of pixels per world unit.
func WithScale(scale float64) Option {
	return func(c *Config) {
		c.Scale = scale
	}
}

// WithFrameRate sets the target number of ticks per second.
func WithFrameRate(fps int) Option {
	return func(c *Config) {
		c.FrameRate = fps
	}
}
