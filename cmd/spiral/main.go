// Command spiral draws the recursive half circle spiral, one small arc per
// frame, in a window, a terminal or headless.
//
// Settings come from SPIRAL_* environment variables first and command line
// flags second:
//
//	SPIRAL_DEPTH=9 spiral -backend terminal -scheme angle
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/spiral"
	"github.com/gogpu/spiral/backend"
	_ "github.com/gogpu/spiral/backend/terminal"
	"github.com/gogpu/spiral/backend/window"
	"github.com/gogpu/spiral/internal/chime"
	"github.com/gogpu/spiral/internal/hud"
)

// options are the settings that only concern this command.
type options struct {
	backend string
	sound   bool
	hud     bool
	font    string
	verbose bool
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatalf("spiral: %v", err)
	}
}

func run(args []string, stderr io.Writer) error {
	base, err := spiral.LoadConfigFromEnv()
	if err != nil {
		return err
	}
	cfg, opts, err := parseFlags(args, base, stderr)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	spiral.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := backend.Lookup(opts.backend)
	if err != nil {
		return err
	}

	// Headless runs are reproducible, so they use frame based time.
	var clock spiral.Clock
	if p.Name() == backend.BackendHeadless {
		clock = spiral.NewFrameClock(cfg.FrameRate)
	}
	s, err := backend.NewSession(cfg, clock)
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.hud {
		var overlay *hud.Overlay
		p, overlay = withHUD(p, opts.font)
		if overlay != nil {
			defer overlay.Close()
		}
	}
	if opts.sound {
		player := chime.New()
		if err := player.Initialize(); err != nil {
			// Non-fatal, the animation runs without sound
			spiral.Logger().Warn("audio unavailable", "err", err)
		} else {
			defer player.Close()
			s.Observe(player.Observe)
		}
	}

	spiral.Logger().Info("starting",
		"backend", p.Name(),
		"depth", cfg.MaxDepth,
		"steps", s.Animator.Sequence().Len(),
		"scheme", cfg.Scheme,
		"mirror", cfg.Mirror)
	return p.Run(ctx, s)
}

// withHUD swaps in a window presenter carrying the overlay. Other
// presenters have nowhere to draw it. The caller closes the returned
// overlay, which is nil when p is kept.
func withHUD(p backend.Presenter, font string) (backend.Presenter, *hud.Overlay) {
	if _, ok := p.(*window.Presenter); !ok {
		spiral.Logger().Warn("hud is only drawn by the window backend", "backend", p.Name())
		return p, nil
	}
	overlay, err := hud.Load(font, 14)
	if err != nil {
		spiral.Logger().Warn("hud disabled", "err", err)
		return p, nil
	}
	return window.New(window.WithHUD(overlay)), overlay
}

// parseFlags overrides base with the flags in args.
func parseFlags(args []string, base spiral.Config, stderr io.Writer) (spiral.Config, options, error) {
	cfg := base
	var opts options

	fs := flag.NewFlagSet("spiral", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.MaxDepth, "depth", cfg.MaxDepth, fmt.Sprintf("recursion depth (1..%d)", spiral.MaxDepthLimit))
	fs.Float64Var(&cfg.Speed, "speed", cfg.Speed, "angular speed multiplier")
	fs.TextVar(&cfg.Scheme, "scheme", cfg.Scheme, "color scheme: solid, time, angle, depth or inv-depth")
	fs.TextVar(&cfg.SolidColor, "color", cfg.SolidColor, "stroke color of the solid scheme")
	fs.BoolVar(&cfg.Symmetric, "symmetric", cfg.Symmetric, "retrace the curve back to the start")
	fs.TextVar(&cfg.Mirror, "mirror", cfg.Mirror, "quadrant copies: single, opposite or all")
	fs.Float64Var(&cfg.StrokeWidth, "stroke", cfg.StrokeWidth, "line width in pixels")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "canvas width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "canvas height")
	fs.Float64Var(&cfg.Scale, "scale", cfg.Scale, "pixels per world unit")
	fs.IntVar(&cfg.FrameRate, "fps", cfg.FrameRate, "ticks per second")

	fs.StringVar(&opts.backend, "backend", "", "window, terminal or headless (default: best available)")
	fs.BoolVar(&opts.sound, "sound", false, "chime on every depth change")
	fs.BoolVar(&opts.hud, "hud", false, "show a status line (window only)")
	fs.StringVar(&opts.font, "font", "", "TTF font for the status line")
	fs.BoolVar(&opts.verbose, "v", false, "log every step")

	if err := fs.Parse(args); err != nil {
		return spiral.Config{}, options{}, err
	}
	if fs.NArg() > 0 {
		return spiral.Config{}, options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, opts, nil
}
