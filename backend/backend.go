package backend

import (
	"context"
	"errors"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoSession is returned when Run is called without a usable session.
	ErrNoSession = errors.New("backend: no session")
)

// Presenter is the interface for presentation backends.
// It shows the frames of a Session to the user and owns the frame loop.
//
// Presenters must be registered via Register() and are selected via
// Get() or Default().
type Presenter interface {
	// Name returns the backend identifier (e.g., "window", "terminal").
	Name() string

	// Run drives s until the user quits or ctx is canceled. Cancellation
	// is a normal way to stop and is not reported as an error.
	Run(ctx context.Context, s *Session) error
}
