// Package backend provides the pluggable presentation layer.
//
// A presenter takes a Session (an animator, the layer stack it draws on and
// a clock) and owns the frame loop that shows it. Backends are registered
// via init() functions and selected at runtime, so a binary only carries
// the presenters it imports:
//
//	import (
//		_ "github.com/gogpu/spiral/backend/terminal"
//		_ "github.com/gogpu/spiral/backend/window"
//	)
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	p := backend.Default()
//
//	// Or request a specific backend
//	p := backend.Get("terminal")
//
// The headless backend is part of this package and always available.
//
// # Usage
//
//	s, err := backend.NewSession(cfg, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer s.Close()
//
//	if err := p.Run(ctx, s); err != nil {
//		log.Fatal(err)
//	}
package backend
