package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// AssetResolver finds the assets directory by walking up from a start
// directory. The search runs once; the result (or failure) is cached.
type AssetResolver struct {
	start   string
	dirName string

	once sync.Once
	dir  string
	err  error
}

// NewAssetResolver creates a resolver that searches start and its parents
// for a directory named "assets".
func NewAssetResolver(start string) *AssetResolver {
	return &AssetResolver{start: start, dirName: "assets"}
}

// Dir returns the absolute path of the assets directory.
func (r *AssetResolver) Dir() (string, error) {
	r.once.Do(func() {
		r.dir, r.err = findUp(r.start, r.dirName)
	})
	return r.dir, r.err
}

// Resolve returns the path of name inside the assets directory. Absolute
// names are returned unchanged.
func (r *AssetResolver) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	dir, err := r.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func findUp(start, name string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, name)
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: searched up from %s", ErrAssetsNotFound, start)
		}
		dir = parent
	}
}

// BuiltinPrefix marks mesh sources generated in code instead of read from
// a file, e.g. "builtin:cube".
const BuiltinPrefix = "builtin:"

// Builtin returns a generated mesh by name: "cube", "icosphere" (two
// subdivisions) or "icosahedron".
func Builtin(name string) (*Mesh, error) {
	switch name {
	case "cube":
		return Cube(), nil
	case "icosphere":
		return Icosphere(2), nil
	case "icosahedron":
		return Icosphere(0), nil
	default:
		return nil, fmt.Errorf("builtin %q: %w", name, ErrMeshNotFound)
	}
}

// LoadMesh reads a mesh file, choosing the loader by extension.
func LoadMesh(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
}

// Store owns the meshes of a session, each registered under a unique name.
type Store struct {
	resolver *AssetResolver
	meshes   map[string]*Mesh
	order    []string
}

// NewStore creates a store that resolves relative file names with resolver.
// A nil resolver only accepts absolute paths and builtins.
func NewStore(resolver *AssetResolver) *Store {
	return &Store{
		resolver: resolver,
		meshes:   make(map[string]*Mesh),
	}
}

// Add registers an existing mesh under name and recomputes its bounds.
func (s *Store) Add(name string, mesh *Mesh) error {
	if _, ok := s.meshes[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateMesh, name)
	}
	if err := mesh.Validate(); err != nil {
		return fmt.Errorf("mesh %q: %w", name, err)
	}
	mesh.CalculateBounds()
	s.meshes[name] = mesh
	s.order = append(s.order, name)
	return nil
}

// Load reads source and registers the result under name. source is either
// a builtin ("builtin:cube") or a file name resolved against the assets
// directory.
func (s *Store) Load(name, source string) (*Mesh, error) {
	if _, ok := s.meshes[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateMesh, name)
	}

	var (
		mesh *Mesh
		err  error
	)
	if builtin, ok := strings.CutPrefix(source, BuiltinPrefix); ok {
		mesh, err = Builtin(builtin)
	} else {
		path := source
		if !filepath.IsAbs(path) {
			if s.resolver == nil {
				return nil, fmt.Errorf("load %q: %w", name, ErrAssetsNotFound)
			}
			if path, err = s.resolver.Resolve(source); err != nil {
				return nil, fmt.Errorf("load %q: %w", name, err)
			}
		}
		mesh, err = LoadMesh(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}

	mesh.Name = name
	if err := s.Add(name, mesh); err != nil {
		return nil, err
	}
	return mesh, nil
}

// Mesh returns the mesh registered under name.
func (s *Store) Mesh(name string) (*Mesh, error) {
	m, ok := s.meshes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMeshNotFound, name)
	}
	return m, nil
}

// Names returns the registered names in registration order.
func (s *Store) Names() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of registered meshes.
func (s *Store) Len() int {
	return len(s.meshes)
}
