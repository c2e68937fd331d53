package backend

import (
	"context"

	"github.com/gogpu/spiral"
	"github.com/gogpu/spiral/layers"
)

// HeadlessBackend draws the whole animation into the layer stack as fast as
// possible without presenting it. It is useful for CI and benchmarks.
type HeadlessBackend struct {
	frames int
	lit    int
}

// init registers the headless backend on package import.
func init() {
	Register(BackendHeadless, func() Presenter {
		return &HeadlessBackend{}
	})
}

// NewHeadlessBackend creates a new headless backend.
func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{}
}

// Name returns the backend identifier.
func (b *HeadlessBackend) Name() string {
	return BackendHeadless
}

// Run ticks s until the animation finishes or ctx is canceled, then
// composites the final frame once.
func (b *HeadlessBackend) Run(ctx context.Context, s *Session) error {
	if err := s.validate(); err != nil {
		return err
	}

	for s.Step() != spiral.Finished {
		b.frames++
		if ctx.Err() != nil {
			spiral.Logger().Info("backend: headless run canceled", "frames", b.frames)
			return nil
		}
	}
	b.frames++
	b.lit = layers.LitPixels(s.Stack.Frame())

	p := s.Animator.Progress()
	spiral.Logger().Info("backend: headless run finished",
		"frames", b.frames,
		"ticks", p.Ticks,
		"steps", s.Animator.Sequence().Len(),
		"lit", b.lit)
	return nil
}

// LitPixels returns how many pixels of the final frame were drawn on.
// It is 0 until a run finishes.
func (b *HeadlessBackend) LitPixels() int {
	return b.lit
}

// Frames returns the number of ticks run so far.
func (b *HeadlessBackend) Frames() int {
	return b.frames
}
