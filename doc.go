// Package spiral draws a self-similar spiral of nested half circles, one
// small arc per frame.
//
// # Overview
//
// The curve is made of half-circle arcs. Depth 1 is a single arc of radius
// 1 spanning the vertical axis from 0 to 2; every further depth halves the
// radius and doubles the number of arcs, packing them into the gaps the
// previous depth left behind. Consecutive arcs meet tangentially, so the
// whole sequence is one continuous line.
//
// # Quick Start
//
//	a, err := spiral.New(spiral.WithDepth(7))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stack, err := layers.New(7, layers.Viewport{Width: 1200, Height: 800, Scale: 256})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	clock := spiral.NewFrameClock(60)
//	for a.Tick(clock.Elapsed(), stack) != spiral.Finished {
//	    clock.Advance()
//	    frame := stack.Frame() // present frame
//	    _ = frame
//	}
//
// # Architecture
//
//   - Generate builds the immutable Sequence of steps for a depth.
//   - Mirror derives the rotated copies of a step (one, two or four).
//   - Animator is the draw state machine; Tick emits DrawCommands.
//   - Palette maps the drawing state to a color under a ColorScheme.
//   - layers.Stack is a depth-indexed canvas built on gogpu/gg.
//   - backend.Session ties an Animator, a Stack and a Clock together;
//     backend/window, backend/terminal and the headless backend present it.
//
// # Coordinate System
//
// World space has the origin at the canvas center with Y pointing up.
// Angles are in radians, 0 along +X, increasing counter-clockwise.
//
// # Timing
//
// The angle advances by a fixed delta per tick, not per elapsed second, so
// the number of ticks an animation takes is independent of the frame rate.
// Elapsed time only drives the Time color scheme.
package spiral
