package scene

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/scanline/pkg/ecs"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// Stable system ids, in run order.
const (
	SystemSpin   ecs.SystemID = "spin"
	SystemRender ecs.SystemID = "render"
)

// DefaultSpinSpeed is the spin rate in full turns per second.
const DefaultSpinSpeed = 0.1

// SpinSystem advances a shared phase t by dt·Speed, wrapping to 0 once it
// reaches 1, and sets every spinning entity's rotation to τ·t per axis plus
// its spring offset.
type SpinSystem struct {
	Speed float64

	t      float64
	spring harmonica.Spring

	reg        *ecs.Registry
	transforms *ecs.Store[Transform]
	spins      *ecs.Store[Spin]
}

// NewSpinSystem creates a spin system whose kick spring steps at fps.
func NewSpinSystem(reg *ecs.Registry, transforms *ecs.Store[Transform], spins *ecs.Store[Spin], fps int) *SpinSystem {
	return &SpinSystem{
		Speed: DefaultSpinSpeed,
		// Frequency 4, critically damped: kicks settle without overshoot.
		spring:     harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
		reg:        reg,
		transforms: transforms,
		spins:      spins,
	}
}

// Phase returns t in [0, 1).
func (s *SpinSystem) Phase() float64 { return s.t }

// Angle returns the shared rotation angle τ·t.
func (s *SpinSystem) Angle() float64 { return 2 * math.Pi * s.t }

// Kick pushes every spinning entity by impulse radians per step.
func (s *SpinSystem) Kick(impulse math3d.Vec3) {
	s.spins.Each(func(_ ecs.Entity, sp *Spin) {
		sp.Kick(impulse)
	})
}

// Update implements ecs.System.
func (s *SpinSystem) Update(dt float64) error {
	s.t += dt * s.Speed
	if s.t >= 1 {
		s.t = 0
	}
	angle := s.Angle()

	for _, e := range s.reg.Query(s.transforms, s.spins) {
		tr, _ := s.transforms.Get(e)
		sp, _ := s.spins.Get(e)
		sp.settle(s.spring)
		tr.Rotation = sp.Axes.Scale(angle).Add(sp.Offset)
	}
	return nil
}

// Canvas is a surface that can be wiped between frames.
type Canvas interface {
	render.Surface
	Clear(c render.Color)
}

// RenderSystem clears the canvas, draws the background grid and pushes
// every mesh entity through the pipeline. Debug axes and bounding boxes are
// drawn on top when enabled.
type RenderSystem struct {
	Background render.Color
	Grid       bool
	Axes       bool
	Bounds     bool

	pipeline   *render.Pipeline
	rasterizer *render.Rasterizer
	overlay    *render.Overlay
	canvas     Canvas

	reg        *ecs.Registry
	transforms *ecs.Store[Transform]
	meshes     *ecs.Store[MeshRef]
}

// GridStep is the spacing of background grid dots in pixels.
const GridStep = 10

// NewRenderSystem creates a render system drawing into canvas.
func NewRenderSystem(reg *ecs.Registry, transforms *ecs.Store[Transform], meshes *ecs.Store[MeshRef], camera *render.Camera, canvas Canvas) *RenderSystem {
	r := render.NewRasterizer(canvas)
	return &RenderSystem{
		Background: render.ColorBlack,
		Grid:       true,
		pipeline:   render.NewPipeline(camera, canvas),
		rasterizer: r,
		overlay:    render.NewOverlay(camera, r),
		canvas:     canvas,
		reg:        reg,
		transforms: transforms,
		meshes:     meshes,
	}
}

// Pipeline returns the geometry pipeline for tuning (culling, workers,
// wireframe, light).
func (s *RenderSystem) Pipeline() *render.Pipeline { return s.pipeline }

// Rasterizer returns the rasterizer, mostly for its Stats.
func (s *RenderSystem) Rasterizer() *render.Rasterizer { return s.rasterizer }

// Update implements ecs.System.
func (s *RenderSystem) Update(float64) error {
	s.canvas.Clear(s.Background)
	s.rasterizer.ResetStats()
	if s.Grid {
		s.rasterizer.DrawGrid(GridStep, GridStep, render.ColorGrid)
	}

	entities := s.reg.Query(s.transforms, s.meshes)
	s.pipeline.Begin()
	for _, e := range entities {
		tr, _ := s.transforms.Get(e)
		ref, _ := s.meshes.Get(e)
		if ref.Mesh == nil {
			continue
		}
		s.pipeline.AddMesh(ref.Mesh, tr.World(), ref.Color)
	}
	s.pipeline.Draw(s.rasterizer)

	if s.Axes || s.Bounds {
		s.drawOverlay(entities)
	}
	return nil
}

// AxisLength is the model-space length of debug axes.
const AxisLength = 1.5

func (s *RenderSystem) drawOverlay(entities []ecs.Entity) {
	for _, e := range entities {
		tr, _ := s.transforms.Get(e)
		world := tr.World()
		if s.Axes {
			s.overlay.DrawAxes(world, AxisLength)
		}
		if !s.Bounds {
			continue
		}
		ref, _ := s.meshes.Get(e)
		if ref.Mesh == nil {
			continue
		}
		if box, ok := render.WorldBounds(ref.Mesh, world); ok {
			s.overlay.DrawBox(box, render.ColorYellow)
		}
	}
}
