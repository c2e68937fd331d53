package backend

import (
	"fmt"
	"time"

	"github.com/gogpu/spiral"
	"github.com/gogpu/spiral/layers"
)

// Observer is called after every tick with the new progress and the step
// that was drawn.
type Observer func(p spiral.Progress, step spiral.Step)

// Session bundles what a presenter needs to play one animation: the state
// machine, the canvas it draws on and the clock feeding it.
//
// Session is NOT safe for concurrent use. Presenters call Step from their
// frame loop only.
type Session struct {
	Animator *spiral.Animator
	Stack    *layers.Stack
	Clock    spiral.Clock

	// Interval is the target time between two ticks.
	Interval time.Duration

	// Title names the animation in window titles and status lines.
	Title string

	observers []Observer
}

// NewSession creates the animator and layer stack described by cfg.
// A nil clock measures wall time.
func NewSession(cfg spiral.Config, clock spiral.Clock) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seq, err := spiral.Generate(cfg.MaxDepth, cfg.Symmetric)
	if err != nil {
		return nil, err
	}
	a, err := spiral.NewAnimator(seq, cfg)
	if err != nil {
		return nil, err
	}
	stack, err := layers.New(cfg.MaxDepth, layers.ViewportFor(cfg))
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = spiral.NewWallClock()
	}
	return &Session{
		Animator: a,
		Stack:    stack,
		Clock:    clock,
		Interval: cfg.FrameInterval(),
		Title:    fmt.Sprintf("Spiral (depth %d)", cfg.MaxDepth),
	}, nil
}

// Observe registers fn to be called after every tick.
func (s *Session) Observe(fn Observer) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

// Step runs one tick onto the stack, advances the clock and notifies the
// observers. It is a no-op once the animation has finished.
func (s *Session) Step() spiral.State {
	if s.Animator.Done() {
		return spiral.Finished
	}
	step := s.Animator.Current()
	state := s.Animator.Tick(s.Clock.Elapsed(), s.Stack)
	s.Clock.Advance()

	p := s.Animator.Progress()
	for _, fn := range s.observers {
		fn(p, step)
	}
	return state
}

func (s *Session) validate() error {
	if s == nil || s.Animator == nil || s.Stack == nil || s.Clock == nil {
		return ErrNoSession
	}
	return nil
}

// Close releases the layer stack.
func (s *Session) Close() error {
	if s.Stack == nil {
		return nil
	}
	return s.Stack.Close()
}
