// scanline - flat-shaded software rasterizer
// Renders a scene of spinning meshes in the terminal, or to an image file.
//
// Controls:
//
//	Space       - Kick every spinning mesh
//	X           - Toggle wireframe outlines
//	C           - Toggle back-face culling
//	A           - Toggle debug axes
//	B           - Toggle debug bounding boxes
//	+/-         - Move the camera forward/back
//	Arrow keys  - Move the camera left/right/up/down
//	Esc, Q      - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/scene"
)

var (
	targetFPS  = flag.Int("fps", 60, "Target FPS")
	bgColor    = flag.String("bg", "", "Background color (R,G,B or #RRGGBB), overrides the scene")
	scenePath  = flag.String("scene", "", "Scene file (YAML); the built-in demo scene if empty")
	snapshot   = flag.String("snapshot", "", "Render headless and write the frame to this .png or .bmp file")
	frames     = flag.Int("frames", 1, "Frames to simulate before writing -snapshot")
	culling    = flag.Bool("cull", true, "Back-face culling")
	frustum    = flag.Bool("frustum", false, "Skip meshes outside the view volume")
	workers    = flag.Int("workers", 1, "Goroutines for the per-face stage (meshes with 256+ faces)")
	legacyFOV  = flag.Float64("legacy-fov", 0, "Use the fixed-factor projection with this scale instead of the camera")
	logLevel   = flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	assetsFrom = flag.String("assets", ".", "Directory to start the upward search for assets/")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scanline - flat-shaded software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scanline [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Space       - Kick the meshes\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  C           - Toggle back-face culling\n")
		fmt.Fprintf(os.Stderr, "  A/B         - Toggle debug axes/bounds\n")
		fmt.Fprintf(os.Stderr, "  +/-         - Move camera forward/back\n")
		fmt.Fprintf(os.Stderr, "  Arrows      - Move camera\n")
		fmt.Fprintf(os.Stderr, "  Esc/Q       - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := checkFPS(*targetFPS); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	render.SetLogger(logger)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	assets := models.NewStore(models.NewAssetResolver(*assetsFrom))

	if *snapshot != "" {
		return runSnapshot(cfg, assets)
	}
	return runTerminal(cfg, assets)
}

// checkFPS rejects frame rates the frame timer and spin spring cannot step.
func checkFPS(fps int) error {
	if fps < 1 {
		return fmt.Errorf("-fps %d: must be at least 1", fps)
	}
	return nil
}

// loadConfig reads the scene and applies the flags the user set explicitly.
func loadConfig() (scene.Config, error) {
	cfg := scene.DefaultConfig()
	if *scenePath != "" {
		var err error
		if cfg, err = scene.LoadConfig(*scenePath); err != nil {
			return cfg, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bg":
			cfg.Background = *bgColor
		case "cull":
			cfg.Culling = *culling
		case "frustum":
			cfg.Frustum = *frustum
		case "workers":
			cfg.Workers = *workers
		}
	})
	return cfg, cfg.Validate()
}

func newScene(cfg scene.Config, assets *models.Store, fb *render.Framebuffer) (*scene.Scene, error) {
	s, err := scene.New(cfg, assets, fb, *targetFPS)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	if *legacyFOV > 0 {
		s.Render.Pipeline().Legacy = &render.LegacyProjector{FOV: *legacyFOV}
	}
	return s, nil
}

// runSnapshot steps the scene at the target frame rate and saves the last
// frame.
func runSnapshot(cfg scene.Config, assets *models.Store) error {
	if *frames < 1 {
		return errors.New("-frames must be at least 1")
	}
	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	s, err := newScene(cfg, assets, fb)
	if err != nil {
		return err
	}

	clock := scene.FixedClock(1 / float64(*targetFPS))
	for range *frames {
		if err := s.Step(clock); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	return fb.Save(*snapshot)
}

// action is an input event forwarded from the event goroutine to the loop,
// which owns the framebuffer and the scene.
type action int

const (
	actionKick action = iota
	actionWireframe
	actionCulling
	actionAxes
	actionBounds
	actionForward
	actionBack
	actionLeft
	actionRight
	actionUp
	actionDown
	actionResize
)

const cameraStep = 0.5

func runTerminal(cfg scene.Config, assets *models.Store) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	presenter := render.NewTerminalPresenter(term)
	fb := render.NewFramebuffer(render.FramebufferSize(width, height))

	s, err := newScene(cfg, assets, fb)
	if err != nil {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
		return err
	}

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	actions := make(chan action, 16)
	sizes := make(chan [2]int, 1)
	send := func(a action) {
		select {
		case actions <- a:
		default: // drop input rather than stall the event reader
		}
	}

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case <-sizes:
				default:
				}
				sizes <- [2]int{ev.Width, ev.Height}
				send(actionResize)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c", "q"):
					cancel()
					return
				case ev.MatchString("space"):
					send(actionKick)
				case ev.MatchString("x"):
					send(actionWireframe)
				case ev.MatchString("c"):
					send(actionCulling)
				case ev.MatchString("a"):
					send(actionAxes)
				case ev.MatchString("b"):
					send(actionBounds)
				case ev.MatchString("+", "="):
					send(actionForward)
				case ev.MatchString("-", "_"):
					send(actionBack)
				case ev.MatchString("left"):
					send(actionLeft)
				case ev.MatchString("right"):
					send(actionRight)
				case ev.MatchString("up"):
					send(actionUp)
				case ev.MatchString("down"):
					send(actionDown)
				}
			}
		}
	}()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(*targetFPS)
	clock := scene.NewFrameClock()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		clock.Tick()

	drain:
		for {
			select {
			case a := <-actions:
				if a == actionResize {
					select {
					case size := <-sizes:
						width, height = size[0], size[1]
						term.Erase()
						term.Resize(width, height)
						fb.Resize(render.FramebufferSize(width, height))
					default: // already applied the latest size
					}
					continue
				}
				apply(s, a)
			default:
				break drain
			}
		}

		if err := s.Step(clock); err != nil {
			cleanup()
			return fmt.Errorf("render: %w", err)
		}
		if err := presenter.Present(fb); err != nil {
			cleanup()
			return fmt.Errorf("present: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// apply runs one input action against the scene.
func apply(s *scene.Scene, a action) {
	cam := s.Camera
	switch a {
	case actionKick:
		s.Spin.Kick(math3d.V3(
			(rand.Float64()-0.5)*0.5,
			(rand.Float64()-0.5)*0.5,
			(rand.Float64()-0.5)*0.5,
		))
	case actionWireframe:
		s.SetWireframe(!s.Wireframe())
	case actionCulling:
		p := s.Render.Pipeline()
		p.Culling = !p.Culling
	case actionAxes:
		s.Render.Axes = !s.Render.Axes
	case actionBounds:
		s.Render.Bounds = !s.Render.Bounds
	case actionForward:
		cam.MoveForward(cameraStep)
	case actionBack:
		cam.MoveForward(-cameraStep)
	case actionLeft:
		cam.MoveRight(-cameraStep)
	case actionRight:
		cam.MoveRight(cameraStep)
	case actionUp:
		cam.MoveUp(cameraStep)
	case actionDown:
		cam.MoveUp(-cameraStep)
	}
}
