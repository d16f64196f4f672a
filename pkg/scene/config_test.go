package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("viewport = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if got := cfg.FOVRadians(); math.Abs(got-math.Pi/3) > 1e-12 {
		t.Errorf("FOVRadians = %v, want π/3", got)
	}
	if len(cfg.Entities) != 3 {
		t.Fatalf("got %d entities, want 3", len(cfg.Entities))
	}
	sphere := cfg.Entities[0].Transform()
	if sphere.Scale.Y != 2 || sphere.Translation.Z != 5 {
		t.Errorf("sphere transform = %+v", sphere)
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
width: 320
height: 240
wireframe: true
front_face: ccw
camera:
  fov: 90
  position: [0, 0, -1]
meshes:
  - name: box
    source: builtin:cube
entities:
  - mesh: box
    translation: [0, 0, 5]
    color: "#ff8000"
    spin: true
  - mesh: box
    translation: [1, 2, 3]
    scale: [2, 2, 2]
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("viewport = %dx%d, want 320x240", cfg.Width, cfg.Height)
	}
	if !cfg.Wireframe || cfg.FrontFace != "ccw" {
		t.Errorf("wireframe = %v, front face = %q", cfg.Wireframe, cfg.FrontFace)
	}
	// Unset keys keep their defaults.
	if cfg.Camera.Near != 0.1 || cfg.Camera.Far != 10 || !cfg.Culling || !cfg.Grid {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.Camera.FOV != 90 || cfg.Camera.Position != (Vec{0, 0, -1}) {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if len(cfg.Entities) != 2 {
		t.Fatalf("got %d entities, want 2", len(cfg.Entities))
	}
	if s := cfg.Entities[0].Transform().Scale; s.X != 1 || s.Y != 1 || s.Z != 1 {
		t.Errorf("default scale = %v, want 1,1,1", s)
	}
	if s := cfg.Entities[1].Transform().Scale; s.X != 2 {
		t.Errorf("scale = %v, want 2,2,2", s)
	}
	if !cfg.Entities[0].Spin || cfg.Entities[1].Spin {
		t.Errorf("spin flags = %v, %v", cfg.Entities[0].Spin, cfg.Entities[1].Spin)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"unknown mesh", "entities:\n  - mesh: ghost\n", models.ErrMeshNotFound},
		{"duplicate mesh", "meshes:\n  - {name: a, source: \"builtin:cube\"}\n  - {name: a, source: \"builtin:cube\"}\n", models.ErrDuplicateMesh},
		{"bad viewport", "width: 0\n", nil},
		{"bad fov", "camera: {fov: 180}\n", nil},
		{"bad planes", "camera: {near: 5, far: 1}\n", nil},
		{"bad winding", "front_face: sideways\n", nil},
		{"bad background", "background: purple\n", nil},
		{"short vector", "light: [1, 2]\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("width: 64\nheight: 48\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 64 || cfg.Height != 48 || len(cfg.Entities) != 0 {
		t.Errorf("got %+v", cfg)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    render.Color
		wantErr bool
	}{
		{"30,30,40", render.RGB(30, 30, 40), false},
		{" 1, 2 ,3 ", render.RGB(1, 2, 3), false},
		{"#ff8000", render.RGB(255, 128, 0), false},
		{"#FFFFFF", render.ColorWhite, false},
		{"#fff", render.Color{}, true},
		{"256,0,0", render.Color{}, true},
		{"1,2", render.Color{}, true},
		{"red", render.Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseWinding(t *testing.T) {
	for in, want := range map[string]render.Winding{
		"":                 render.Clockwise,
		"cw":               render.Clockwise,
		"CW":               render.Clockwise,
		"ccw":              render.CounterClockwise,
		"counterclockwise": render.CounterClockwise,
	} {
		got, err := ParseWinding(in)
		if err != nil || got != want {
			t.Errorf("ParseWinding(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseWinding("up"); err == nil {
		t.Error("expected error for unknown winding")
	}
}
