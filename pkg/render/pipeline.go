package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"golang.org/x/sync/errgroup"
)

// MeshSource is the geometry the pipeline reads. It is declared here so
// render does not depend on how meshes are stored; *models.Mesh satisfies it.
type MeshSource interface {
	VertexCount() int
	Vertex(i int) math3d.Vec3
	FaceCount() int
	Face(i int) [3]int
}

// Bounded is implemented by meshes that know their model-space bounds.
// Only bounded meshes take part in frustum rejection.
type Bounded interface {
	Bounds() (min, max math3d.Vec3)
}

// Winding names the on-screen (y down) corner order of front faces.
type Winding int

const (
	// Clockwise front faces: the outward normal is cross(c2-c0, c1-c0).
	Clockwise Winding = iota
	// CounterClockwise front faces: the outward normal is cross(c1-c0, c2-c0).
	CounterClockwise
)

// parallelThreshold is the smallest face count worth fanning out.
const parallelThreshold = 256

// PipelineStats counts faces for one frame.
type PipelineStats struct {
	Meshes   int
	Rejected int // meshes skipped whole by FrustumCull
	Faces    int
	Culled   int
	Drawn    int
}

// Pipeline transforms, culls, shades and projects mesh faces, collecting one
// Triangle, depth key and color per surviving face. Buffers are reused
// across frames.
//
// Typical frame:
//
//	p.Begin()
//	p.AddMesh(mesh, world, color) // for each entity
//	p.Draw(rasterizer)
type Pipeline struct {
	Culling   bool
	FrontFace Winding
	Light     Light
	Wireframe bool  // outline each filled face
	Outline   Color // wireframe color
	Workers   int   // >1 splits the per-face stage across goroutines
	Stats     PipelineStats

	// FrustumCull skips meshes whose world bounds miss the view volume.
	// Off by default, so every mesh is projected unclipped.
	FrustumCull bool

	// Legacy replaces the camera projection with the fixed-factor one.
	Legacy *LegacyProjector

	camera *Camera
	target Surface

	triangles []Triangle
	depths    []float64
	colors    []Color
	order     []int
	scratch   []faceResult

	frame frame
}

// frame is the per-frame state every face reads.
type frame struct {
	world     math3d.Mat4
	proj      math3d.Mat4
	cameraPos math3d.Vec3
	frustum   Frustum
	width     int
	height    int
}

type faceResult struct {
	tri     Triangle
	depth   float64
	color   Color
	visible bool
}

// NewPipeline creates a pipeline projecting through camera onto target,
// with culling on and the default light.
func NewPipeline(camera *Camera, target Surface) *Pipeline {
	return &Pipeline{
		Culling: true,
		Light:   DefaultLight(),
		Outline: ColorWhite,
		camera:  camera,
		target:  target,
	}
}

// Camera returns the camera the pipeline projects through.
func (p *Pipeline) Camera() *Camera { return p.camera }

// Reserve grows the per-frame buffers to hold n faces without reallocating.
func (p *Pipeline) Reserve(n int) {
	if cap(p.triangles) < n {
		p.triangles = make([]Triangle, 0, n)
		p.depths = make([]float64, 0, n)
		p.colors = make([]Color, 0, n)
		p.order = make([]int, 0, n)
	}
}

// Begin clears the per-frame buffers and snapshots the camera and viewport.
func (p *Pipeline) Begin() {
	p.triangles = p.triangles[:0]
	p.depths = p.depths[:0]
	p.colors = p.colors[:0]
	p.order = p.order[:0]
	p.Stats = PipelineStats{}

	p.camera.SetViewport(p.target.Width(), p.target.Height())
	p.frame = frame{
		proj:      p.camera.ProjectionMatrix(),
		cameraPos: p.camera.Position,
		frustum:   p.camera.Frustum(),
		width:     p.target.Width(),
		height:    p.target.Height(),
	}
}

// AddMesh runs every face of mesh through the geometry stage and appends the
// visible ones to this frame's buffers.
//
// Face indices are checked before any work is done. An out-of-range index
// is a data-integrity bug and panics with a *models.IndexError.
func (p *Pipeline) AddMesh(mesh MeshSource, world math3d.Mat4, base Color) {
	n := mesh.FaceCount()
	vc := mesh.VertexCount()
	for i := range n {
		if err := models.CheckFace(i, mesh.Face(i), vc); err != nil {
			panic(err)
		}
	}

	p.Stats.Meshes++
	if p.FrustumCull {
		if box, ok := WorldBounds(mesh, world); ok && !p.frame.frustum.IntersectAABB(box.Translate(p.frame.cameraPos.Negate())) {
			p.Stats.Rejected++
			return
		}
	}
	p.Stats.Faces += n
	p.frame.world = world

	if cap(p.scratch) < n {
		p.scratch = make([]faceResult, n)
	}
	results := p.scratch[:n]

	if p.Workers > 1 && n >= parallelThreshold {
		p.processParallel(mesh, base, results)
	} else {
		for i := range results {
			results[i] = p.processFace(mesh, i, base)
		}
	}

	// Compact in face order so serial and parallel output match exactly.
	for _, res := range results {
		if !res.visible {
			p.Stats.Culled++
			continue
		}
		p.triangles = append(p.triangles, res.tri)
		p.depths = append(p.depths, res.depth)
		p.colors = append(p.colors, res.color)
	}
}

func (p *Pipeline) processParallel(mesh MeshSource, base Color, results []faceResult) {
	n := len(results)
	chunk := (n + p.Workers - 1) / p.Workers

	var g errgroup.Group
	g.SetLimit(p.Workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				results[i] = p.processFace(mesh, i, base)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail
}

// processFace is the per-face geometry stage. It only reads shared state.
func (p *Pipeline) processFace(mesh MeshSource, i int, base Color) faceResult {
	f := &p.frame
	face := mesh.Face(i)

	var corners [3]math3d.Vec3
	for j, idx := range face {
		corners[j] = f.world.MulVec3(mesh.Vertex(idx))
	}

	normal := p.Normal(corners)
	if p.Culling && normal.Dot(corners[0].Sub(f.cameraPos)) >= 0 {
		return faceResult{}
	}

	res := faceResult{
		visible: true,
		color:   WithIntensity(base, p.Light.Intensity(normal)),
	}
	var view [3]math3d.Vec3
	for j, c := range corners {
		view[j] = c.Sub(f.cameraPos)
		res.depth += view[j].Z
	}

	if p.Legacy != nil {
		res.tri = p.Legacy.ProjectFace(view, f.width, f.height)
		return res
	}
	for j, v := range view {
		ndc := f.proj.MulVec4(v.Vec4()).PerspectiveDivide()
		res.tri[j] = math3d.ToViewport(ndc, f.width, f.height)
	}
	return res
}

// WorldBounds returns the world-space box around a Bounded mesh.
func WorldBounds(mesh MeshSource, world math3d.Mat4) (AABB, bool) {
	b, ok := mesh.(Bounded)
	if !ok {
		return AABB{}, false
	}
	return NewAABB(b.Bounds()).Transform(world), true
}

// Normal returns the outward normal of a world-space face under the
// pipeline's winding convention. It is not normalized.
func (p *Pipeline) Normal(corners [3]math3d.Vec3) math3d.Vec3 {
	e1 := corners[1].Sub(corners[0])
	e2 := corners[2].Sub(corners[0])
	if p.FrontFace == CounterClockwise {
		return e1.Cross(e2)
	}
	return e2.Cross(e1)
}

// Triangles returns this frame's projected faces in submission order.
func (p *Pipeline) Triangles() []Triangle { return p.triangles }

// Depths returns the depth key of each triangle.
func (p *Pipeline) Depths() []float64 { return p.depths }

// Colors returns the shaded color of each triangle.
func (p *Pipeline) Colors() []Color { return p.colors }

// Draw sorts this frame's faces far to near and fills them into r.
func (p *Pipeline) Draw(r *Rasterizer) {
	p.order = DrawOrder(p.depths, p.order)
	for _, i := range p.order {
		r.DrawTriangleFilled(p.triangles[i], p.colors[i])
		if p.Wireframe {
			r.DrawTriangleWireframe(p.triangles[i], p.Outline)
		}
	}
	p.Stats.Drawn = len(p.order)
	Logger().Debug("frame drawn",
		"meshes", p.Stats.Meshes,
		"rejected", p.Stats.Rejected,
		"faces", p.Stats.Faces,
		"culled", p.Stats.Culled,
		"drawn", p.Stats.Drawn,
		"degenerate", r.Stats.Degenerate)
}
