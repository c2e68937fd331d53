package spiral

import "time"

// Clock supplies the elapsed animation time fed to the Time color scheme.
// It never influences how far an arc advances per tick.
type Clock interface {
	// Elapsed returns the seconds since the animation started.
	Elapsed() float64

	// Advance is called once after every tick.
	Advance()
}

// WallClock measures real time since its creation.
type WallClock struct {
	start time.Time
	now   func() time.Time
}

// NewWallClock returns a clock started at the current time.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now(), now: time.Now}
}

// Elapsed implements Clock.
func (c *WallClock) Elapsed() float64 {
	return c.now().Sub(c.start).Seconds()
}

// Advance implements Clock. Wall time advances on its own.
func (c *WallClock) Advance() {}

// FrameClock derives time from the number of ticks at a nominal frame rate.
// Two runs with the same frame rate observe identical times.
type FrameClock struct {
	fps    int
	frames int
}

// NewFrameClock returns a clock that advances 1/fps seconds per tick.
// Non-positive rates fall back to 60.
func NewFrameClock(fps int) *FrameClock {
	if fps <= 0 {
		fps = 60
	}
	return &FrameClock{fps: fps}
}

// Elapsed implements Clock.
func (c *FrameClock) Elapsed() float64 {
	return float64(c.frames) / float64(c.fps)
}

// Advance implements Clock.
func (c *FrameClock) Advance() { c.frames++ }

// Frames returns the number of ticks counted so far.
func (c *FrameClock) Frames() int { return c.frames }
