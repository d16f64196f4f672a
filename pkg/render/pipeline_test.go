package render

import (
	"errors"
	"slices"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// triMesh is a MeshSource over plain slices.
type triMesh struct {
	vertices []math3d.Vec3
	faces    [][3]int
}

func (m *triMesh) VertexCount() int         { return len(m.vertices) }
func (m *triMesh) Vertex(i int) math3d.Vec3 { return m.vertices[i] }
func (m *triMesh) FaceCount() int           { return len(m.faces) }
func (m *triMesh) Face(i int) [3]int        { return m.faces[i] }

// newTestPipeline creates a pipeline with the default camera at the origin
// on an 800x600 surface.
func newTestPipeline() (*Pipeline, *Framebuffer) {
	fb := NewFramebuffer(800, 600)
	return NewPipeline(NewCamera(), fb), fb
}

func singleFace(a, b, c math3d.Vec3) *triMesh {
	return &triMesh{vertices: []math3d.Vec3{a, b, c}, faces: [][3]int{{0, 1, 2}}}
}

func TestPipelineBackFaceCulling(t *testing.T) {
	front := singleFace(math3d.V3(0, 0, 5), math3d.V3(1, 0, 5), math3d.V3(0, 1, 5))
	back := singleFace(math3d.V3(0, 0, 5), math3d.V3(0, 1, 5), math3d.V3(1, 0, 5))

	tests := []struct {
		name    string
		mesh    *triMesh
		culling bool
		winding Winding
		want    int
	}{
		{"front face kept", front, true, Clockwise, 1},
		{"reversed face culled", back, true, Clockwise, 0},
		{"culling off keeps reversed face", back, false, Clockwise, 1},
		{"counter-clockwise keeps reversed face", back, true, CounterClockwise, 1},
		{"counter-clockwise culls front face", front, true, CounterClockwise, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, _ := newTestPipeline()
			p.Culling = tc.culling
			p.FrontFace = tc.winding
			p.Begin()
			p.AddMesh(tc.mesh, math3d.Identity(), ColorWhite)

			if got := len(p.Triangles()); got != tc.want {
				t.Errorf("kept %d faces, want %d", got, tc.want)
			}
			if p.Stats.Faces != 1 || p.Stats.Culled != 1-tc.want {
				t.Errorf("stats = %+v", p.Stats)
			}
		})
	}
}

func TestPipelineProjection(t *testing.T) {
	p, _ := newTestPipeline()
	p.Begin()
	p.AddMesh(singleFace(math3d.V3(0, 0, 5), math3d.V3(1, 0, 5), math3d.V3(0, 1, 5)), math3d.Identity(), ColorWhite)

	if len(p.Triangles()) != 1 {
		t.Fatalf("got %d triangles, want 1", len(p.Triangles()))
	}
	want := Triangle{math3d.V2i(400, 300), math3d.V2i(503, 300), math3d.V2i(400, 196)}
	if got := p.Triangles()[0]; got != want {
		t.Errorf("triangle = %v, want %v", got, want)
	}
	if got := p.Depths()[0]; got != 15 {
		t.Errorf("depth = %v, want 15", got)
	}
	// Normal (0, 0, -1) against light (0.25, -0.5, 0.25): intensity 0.25.
	if got, want := p.Colors()[0], RGB(63, 63, 63); got != want {
		t.Errorf("color = %v, want %v", got, want)
	}
	if got := p.Camera().AspectRatio; got != 0.75 {
		t.Errorf("aspect = %v, want 0.75", got)
	}
}

func TestPipelineWorldTransform(t *testing.T) {
	p, _ := newTestPipeline()
	p.Begin()
	mesh := singleFace(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	p.AddMesh(mesh, math3d.Translate(math3d.V3(0, 0, 5)), ColorWhite)

	if got := p.Triangles()[0][0]; got != math3d.V2i(400, 300) {
		t.Errorf("translated origin = %v, want (400, 300)", got)
	}
}

func TestPipelineCameraSpace(t *testing.T) {
	p, _ := newTestPipeline()
	p.Camera().SetPosition(math3d.V3(0, 0, -5))
	p.Begin()
	p.AddMesh(singleFace(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)), math3d.Identity(), ColorWhite)

	if len(p.Triangles()) != 1 {
		t.Fatal("face culled")
	}
	want := Triangle{math3d.V2i(400, 300), math3d.V2i(503, 300), math3d.V2i(400, 196)}
	if got := p.Triangles()[0]; got != want {
		t.Errorf("triangle = %v, want %v", got, want)
	}
	if got := p.Depths()[0]; got != 15 {
		t.Errorf("depth = %v, want 15", got)
	}
}

func TestPipelineEyePlane(t *testing.T) {
	p, _ := newTestPipeline()
	p.Culling = false
	p.Begin()
	p.AddMesh(singleFace(math3d.V3(1, 1, 0), math3d.V3(2, 1, 0), math3d.V3(1, 2, 0)), math3d.Identity(), ColorWhite)

	// w = 0 is replaced by 0.01: finite, far off screen.
	if got, want := p.Triangles()[0][0], math3d.V2i(52361, -51661); got != want {
		t.Errorf("eye-plane corner = %v, want %v", got, want)
	}
}

func TestPipelineIndexPanics(t *testing.T) {
	p, _ := newTestPipeline()
	p.Begin()
	mesh := &triMesh{
		vertices: []math3d.Vec3{{}, {X: 1}, {Y: 1}},
		faces:    [][3]int{{0, 1, 2}, {0, 1, 5}},
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("recovered %v, want an error", r)
		}
		var ie *models.IndexError
		if !errors.As(err, &ie) {
			t.Fatalf("panic %v is not an IndexError", err)
		}
		if ie.Face != 1 || ie.Corner != 2 || ie.Index != 5 || ie.VertexCount != 3 {
			t.Errorf("IndexError = %+v", ie)
		}
		if len(p.Triangles()) != 0 {
			t.Error("faces were processed before the check")
		}
	}()
	p.AddMesh(mesh, math3d.Identity(), ColorWhite)
	t.Fatal("AddMesh did not panic")
}

func TestPipelineLegacyProjection(t *testing.T) {
	p, _ := newTestPipeline()
	p.Legacy = &LegacyProjector{FOV: 600}
	p.Begin()
	p.AddMesh(singleFace(math3d.V3(0, 0, 5), math3d.V3(1, 0, 5), math3d.V3(1, 1, 5)), math3d.Identity(), ColorWhite)

	want := Triangle{math3d.V2i(400, 300), math3d.V2i(520, 300), math3d.V2i(520, 180)}
	if got := p.Triangles()[0]; got != want {
		t.Errorf("triangle = %v, want %v", got, want)
	}
}

func TestPipelineParallelMatchesSerial(t *testing.T) {
	sphere := models.Icosphere(3)
	world := math3d.World(math3d.V3(0.5, -0.25, 4), math3d.V3(0.3, 0.7, 1.1), math3d.V3(1.5, 1, 1))

	run := func(workers int) *Pipeline {
		p, _ := newTestPipeline()
		p.Workers = workers
		p.Begin()
		p.AddMesh(sphere, world, ColorCyan)
		return p
	}
	serial, parallel := run(1), run(4)

	if sphere.FaceCount() < parallelThreshold {
		t.Fatalf("mesh too small to fan out: %d faces", sphere.FaceCount())
	}
	if !slices.Equal(serial.Triangles(), parallel.Triangles()) {
		t.Error("triangles differ")
	}
	if !slices.Equal(serial.Depths(), parallel.Depths()) {
		t.Error("depths differ")
	}
	if !slices.Equal(serial.Colors(), parallel.Colors()) {
		t.Error("colors differ")
	}
	if serial.Stats != parallel.Stats {
		t.Errorf("stats %+v vs %+v", serial.Stats, parallel.Stats)
	}
	if serial.Stats.Culled == 0 || len(serial.Triangles()) == 0 {
		t.Errorf("expected a mix of culled and kept faces: %+v", serial.Stats)
	}
}

func TestPipelineDrawPainterOrder(t *testing.T) {
	p, fb := newTestPipeline()
	r := NewRasterizer(fb)
	p.Begin()

	// Same shape at two depths, near one submitted first.
	near := singleFace(math3d.V3(-2, -2, 5), math3d.V3(4, -2, 5), math3d.V3(-2, 4, 5))
	far := singleFace(math3d.V3(-2, -2, 8), math3d.V3(4, -2, 8), math3d.V3(-2, 4, 8))
	p.AddMesh(near, math3d.Identity(), ColorGreen)
	p.AddMesh(far, math3d.Identity(), ColorRed)
	p.Draw(r)

	if got, want := fb.Pixel(400, 300), RGB(0, 63, 0); got != want {
		t.Errorf("center = %v, want the near face %v", got, want)
	}
	if p.Stats.Drawn != 2 || p.Stats.Meshes != 2 {
		t.Errorf("stats = %+v", p.Stats)
	}

	// A new frame starts empty.
	p.Begin()
	if len(p.Triangles()) != 0 || p.Stats != (PipelineStats{}) {
		t.Errorf("Begin left %d triangles, stats %+v", len(p.Triangles()), p.Stats)
	}
}

func TestPipelineWireframe(t *testing.T) {
	p, fb := newTestPipeline()
	p.Wireframe = true
	p.Begin()
	p.AddMesh(singleFace(math3d.V3(0, 0, 5), math3d.V3(1, 0, 5), math3d.V3(0, 1, 5)), math3d.Identity(), ColorRed)
	p.Draw(NewRasterizer(fb))

	if got := fb.Pixel(400, 300); got != ColorWhite {
		t.Errorf("corner pixel = %v, want outline white", got)
	}
	if got, want := fb.Pixel(420, 280), RGB(63, 0, 0); got != want {
		t.Errorf("interior pixel = %v, want fill %v", got, want)
	}
}

func BenchmarkPipelineIcosphere(b *testing.B) {
	sphere := models.Icosphere(4)
	world := math3d.Translate(math3d.V3(0, 0, 4))
	p, fb := newTestPipeline()
	r := NewRasterizer(fb)
	for b.Loop() {
		p.Begin()
		p.AddMesh(sphere, world, ColorWhite)
		p.Draw(r)
	}
}
