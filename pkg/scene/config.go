package scene

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
	"gopkg.in/yaml.v3"
)

// Vec is a YAML-friendly vector: `[x, y, z]`.
type Vec [3]float64

// Vec3 converts v to a math3d vector.
func (v Vec) Vec3() math3d.Vec3 { return math3d.V3(v[0], v[1], v[2]) }

// Config describes a scene: viewport, camera, light, meshes and entities.
type Config struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Background string  `yaml:"background"` // "R,G,B" or "#RRGGBB"
	Grid       bool    `yaml:"grid"`
	Wireframe  bool    `yaml:"wireframe"`
	Axes       bool    `yaml:"axes"`   // debug axes per entity
	Bounds     bool    `yaml:"bounds"` // debug bounding boxes per entity
	Culling    bool    `yaml:"culling"`
	Frustum    bool    `yaml:"frustum_cull"` // skip meshes outside the view volume
	FrontFace  string  `yaml:"front_face"`   // "cw" or "ccw"
	Workers    int     `yaml:"workers"`
	SpinSpeed  float64 `yaml:"spin_speed"` // turns per second

	Camera CameraConfig `yaml:"camera"`
	Light  Vec          `yaml:"light"`

	Meshes   []MeshConfig   `yaml:"meshes"`
	Entities []EntityConfig `yaml:"entities"`
}

// CameraConfig holds the projection parameters. FOV is in degrees.
type CameraConfig struct {
	FOV      float64 `yaml:"fov"`
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Position Vec     `yaml:"position"`
}

// MeshConfig registers a mesh under Name. Source is a file inside the
// assets directory, an absolute path, or a builtin such as "builtin:cube".
type MeshConfig struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
}

// EntityConfig places one mesh instance.
type EntityConfig struct {
	Mesh        string `yaml:"mesh"`
	Translation Vec    `yaml:"translation"`
	Rotation    Vec    `yaml:"rotation"` // radians
	Scale       *Vec   `yaml:"scale"`    // unset means 1, 1, 1
	Color       string `yaml:"color"`    // unset means white
	Spin        bool   `yaml:"spin"`
}

// Transform returns the entity's initial transform.
func (e EntityConfig) Transform() Transform {
	t := NewTransform(e.Translation.Vec3())
	t.Rotation = e.Rotation.Vec3()
	if e.Scale != nil {
		t.Scale = e.Scale.Vec3()
	}
	return t
}

// baseConfig holds every setting except meshes and entities.
func baseConfig() Config {
	return Config{
		Width:      800,
		Height:     600,
		Background: "0,0,0",
		Grid:       true,
		Culling:    true,
		FrontFace:  "cw",
		Workers:    1,
		SpinSpeed:  DefaultSpinSpeed,
		Camera: CameraConfig{
			FOV:  60,
			Near: 0.1,
			Far:  10,
		},
		Light: Vec{0.25, -0.5, 0.25},
	}
}

// DefaultConfig returns the demo scene: a stretched icosphere and two cubes,
// all spinning, seen from the origin.
func DefaultConfig() Config {
	cfg := baseConfig()
	cfg.Meshes = []MeshConfig{
		{Name: "isphere", Source: models.BuiltinPrefix + "icosphere"},
		{Name: "cube", Source: models.BuiltinPrefix + "cube"},
	}
	cfg.Entities = []EntityConfig{
		{Mesh: "isphere", Translation: Vec{-2, -2, 5}, Scale: &Vec{1.2, 2, 1.2}, Spin: true},
		{Mesh: "cube", Translation: Vec{2, 2, 5}, Spin: true},
		{Mesh: "cube", Translation: Vec{4, -1, 8}, Spin: true},
	}
	return cfg
}

// LoadConfig reads a YAML scene file. Settings it leaves out keep their
// default values; meshes and entities come only from the file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read scene: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a YAML scene.
func ParseConfig(data []byte) (Config, error) {
	cfg := baseConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse scene: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem in the config at once.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport %dx%d: must be positive", c.Width, c.Height))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v: must be in (0, 180) degrees", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera near %v far %v: need 0 < near < far", c.Camera.Near, c.Camera.Far))
	}
	if _, err := ParseWinding(c.FrontFace); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseColor(c.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}

	names := make(map[string]bool, len(c.Meshes))
	for _, m := range c.Meshes {
		if m.Name == "" || m.Source == "" {
			errs = append(errs, fmt.Errorf("mesh %q: name and source are required", m.Name))
			continue
		}
		if names[m.Name] {
			errs = append(errs, fmt.Errorf("mesh %q: %w", m.Name, models.ErrDuplicateMesh))
		}
		names[m.Name] = true
	}
	for i, e := range c.Entities {
		if !names[e.Mesh] {
			errs = append(errs, fmt.Errorf("entity %d: mesh %q: %w", i, e.Mesh, models.ErrMeshNotFound))
		}
		if e.Color != "" {
			if _, err := ParseColor(e.Color); err != nil {
				errs = append(errs, fmt.Errorf("entity %d: color: %w", i, err))
			}
		}
	}
	return errors.Join(errs...)
}

// FOVRadians returns the camera field of view in radians.
func (c Config) FOVRadians() float64 {
	return c.Camera.FOV * math.Pi / 180
}

// ParseWinding maps "cw" / "ccw" (or the long forms) to a render.Winding.
// An empty string selects clockwise.
func ParseWinding(s string) (render.Winding, error) {
	switch strings.ToLower(s) {
	case "", "cw", "clockwise":
		return render.Clockwise, nil
	case "ccw", "counterclockwise", "counter-clockwise":
		return render.CounterClockwise, nil
	default:
		return 0, fmt.Errorf("front face %q: want cw or ccw", s)
	}
}

// ParseColor parses an opaque color written as "R,G,B" (decimal) or
// "#RRGGBB".
func ParseColor(s string) (render.Color, error) {
	s = strings.TrimSpace(s)
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 {
			return render.Color{}, fmt.Errorf("color %q: want #RRGGBB", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return render.Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		return render.ARGB(0xFF000000 | uint32(v)), nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return render.Color{}, fmt.Errorf("color %q: want R,G,B or #RRGGBB", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return render.Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	return render.RGB(rgb[0], rgb[1], rgb[2]), nil
}
