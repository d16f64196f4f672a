package scene

import (
	"fmt"

	"github.com/taigrr/scanline/pkg/ecs"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Scene owns the registry, the component stores and the two systems of a
// running scene.
type Scene struct {
	Registry   *ecs.Registry
	Transforms *ecs.Store[Transform]
	Meshes     *ecs.Store[MeshRef]
	Spins      *ecs.Store[Spin]

	Assets *models.Store
	Camera *render.Camera

	Spin   *SpinSystem
	Render *RenderSystem
}

// New builds a scene from cfg: meshes are loaded into assets, entities are
// spawned, and the spin and render systems are registered. Frames are
// drawn into canvas; fps sets the spin spring's step.
//
// Every mesh an entity uses must be declared in cfg.Meshes. When assets
// already holds a mesh under a declared name, that mesh is used and the
// declared source is not loaded; a warning is logged.
func New(cfg Config, assets *models.Store, canvas Canvas, fps int) (*Scene, error) {
	if fps < 1 {
		return nil, fmt.Errorf("fps %d: must be at least 1", fps)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		Registry:   ecs.NewRegistry(),
		Transforms: ecs.NewStore[Transform](),
		Meshes:     ecs.NewStore[MeshRef](),
		Spins:      ecs.NewStore[Spin](),
		Assets:     assets,
		Camera:     render.NewCamera(),
	}
	s.Registry.Attach(s.Transforms, s.Meshes, s.Spins)

	s.Camera.SetPosition(cfg.Camera.Position.Vec3())
	s.Camera.SetFOV(cfg.FOVRadians())
	s.Camera.SetClipPlanes(cfg.Camera.Near, cfg.Camera.Far)
	s.Camera.SetViewport(canvas.Width(), canvas.Height())

	s.Spin = NewSpinSystem(s.Registry, s.Transforms, s.Spins, fps)
	s.Spin.Speed = cfg.SpinSpeed

	s.Render = NewRenderSystem(s.Registry, s.Transforms, s.Meshes, s.Camera, canvas)
	s.Render.Background, _ = ParseColor(cfg.Background)
	s.Render.Grid = cfg.Grid
	s.Render.Axes = cfg.Axes
	s.Render.Bounds = cfg.Bounds

	p := s.Render.Pipeline()
	p.Culling = cfg.Culling
	p.FrustumCull = cfg.Frustum
	p.FrontFace, _ = ParseWinding(cfg.FrontFace)
	p.Wireframe = cfg.Wireframe
	p.Workers = cfg.Workers
	p.Light = render.Light{Direction: cfg.Light.Vec3()}

	for _, m := range cfg.Meshes {
		if _, err := assets.Mesh(m.Name); err == nil {
			render.Logger().Warn("mesh already registered, source ignored",
				"mesh", m.Name, "source", m.Source)
			continue
		}
		if _, err := assets.Load(m.Name, m.Source); err != nil {
			return nil, err
		}
	}

	faces := 0
	for _, ec := range cfg.Entities {
		color := render.ColorWhite
		if ec.Color != "" {
			color, _ = ParseColor(ec.Color)
		}
		e, err := s.Spawn(ec.Mesh, ec.Transform(), color)
		if err != nil {
			return nil, err
		}
		if ec.Spin {
			s.Spins.Set(e, NewSpin())
		}
		ref, _ := s.Meshes.Get(e)
		faces += ref.Mesh.FaceCount()
	}
	p.Reserve(faces)

	if err := s.Registry.AddSystem(SystemSpin, s.Spin); err != nil {
		return nil, err
	}
	if err := s.Registry.AddSystem(SystemRender, s.Render); err != nil {
		return nil, err
	}

	render.Logger().Debug("scene ready",
		"meshes", assets.Len(),
		"entities", s.Registry.Len(),
		"faces", faces,
		"systems", s.Registry.Systems())
	return s, nil
}

// Spawn creates an entity showing the named mesh.
func (s *Scene) Spawn(mesh string, t Transform, color render.Color) (ecs.Entity, error) {
	m, err := s.Assets.Mesh(mesh)
	if err != nil {
		return 0, fmt.Errorf("spawn: %w", err)
	}
	e := s.Registry.Create()
	s.Transforms.Set(e, t)
	s.Meshes.Set(e, MeshRef{Name: mesh, Mesh: m, Color: color})
	return e, nil
}

// Step runs one frame with the clock's delta.
func (s *Scene) Step(clock Clock) error {
	return s.Registry.Update(clock.DeltaSeconds())
}

// SetWireframe toggles the white outline pass.
func (s *Scene) SetWireframe(on bool) {
	s.Render.Pipeline().Wireframe = on
}

// Wireframe reports whether outlines are drawn.
func (s *Scene) Wireframe() bool {
	return s.Render.Pipeline().Wireframe
}
