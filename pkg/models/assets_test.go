package models

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAssetResolverWalksUp(t *testing.T) {
	root := t.TempDir()
	assets := filepath.Join(root, "assets")
	deep := filepath.Join(root, "a", "b", "c")
	for _, dir := range []string{assets, deep} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	r := NewAssetResolver(deep)
	got, err := r.Resolve("cube.obj")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(assets, "cube.obj"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAssetResolverCaches(t *testing.T) {
	root := t.TempDir()
	assets := filepath.Join(root, "assets")
	if err := os.Mkdir(assets, 0o755); err != nil {
		t.Fatal(err)
	}

	r := NewAssetResolver(root)
	first, err := r.Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}

	// A second lookup must not search again.
	if err := os.Remove(assets); err != nil {
		t.Fatal(err)
	}
	second, err := r.Dir()
	if err != nil || second != first {
		t.Errorf("got %q, %v; want cached %q", second, err, first)
	}
}

func TestAssetResolverNotFound(t *testing.T) {
	// Walking up from a fresh temp dir may still find an assets directory
	// on the host, so use a name nothing else has.
	r := &AssetResolver{start: t.TempDir(), dirName: "no-such-assets-dir-4c1f"}
	_, err := r.Resolve("cube.obj")
	if !errors.Is(err, ErrAssetsNotFound) {
		t.Errorf("got %v, want ErrAssetsNotFound", err)
	}
}

func TestAssetResolverAbsolute(t *testing.T) {
	r := &AssetResolver{start: t.TempDir(), dirName: "no-such-assets-dir-4c1f"}
	abs := filepath.Join(t.TempDir(), "x.obj")
	got, err := r.Resolve(abs)
	if err != nil || got != abs {
		t.Errorf("got %q, %v; want %q", got, err, abs)
	}
}

func TestStore(t *testing.T) {
	root := t.TempDir()
	assets := filepath.Join(root, "assets")
	if err := os.Mkdir(assets, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assets, "cube.obj"), []byte(cubeOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(NewAssetResolver(root))

	if _, err := s.Load("file-cube", "cube.obj"); err != nil {
		t.Fatalf("Load file: %v", err)
	}
	if _, err := s.Load("sphere", "builtin:icosphere"); err != nil {
		t.Fatalf("Load builtin: %v", err)
	}

	t.Run("duplicate name", func(t *testing.T) {
		_, err := s.Load("sphere", "builtin:cube")
		if !errors.Is(err, ErrDuplicateMesh) {
			t.Errorf("got %v, want ErrDuplicateMesh", err)
		}
	})

	t.Run("lookup", func(t *testing.T) {
		m, err := s.Mesh("file-cube")
		if err != nil {
			t.Fatalf("Mesh: %v", err)
		}
		if m.Name != "file-cube" || m.FaceCount() != 12 {
			t.Errorf("got %q with %d faces", m.Name, m.FaceCount())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := s.Mesh("nope"); !errors.Is(err, ErrMeshNotFound) {
			t.Errorf("got %v, want ErrMeshNotFound", err)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		if _, err := s.Load("tex", "brick.tga"); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("got %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("unknown builtin", func(t *testing.T) {
		if _, err := s.Load("teapot", "builtin:teapot"); !errors.Is(err, ErrMeshNotFound) {
			t.Errorf("got %v, want ErrMeshNotFound", err)
		}
	})

	if got := s.Names(); len(got) != 2 || got[0] != "file-cube" || got[1] != "sphere" {
		t.Errorf("names: got %v", got)
	}
}

func TestStoreRejectsInvalidMesh(t *testing.T) {
	s := NewStore(nil)
	bad := &Mesh{Faces: []Face{{0, 1, 2}}}
	var ie *IndexError
	if err := s.Add("bad", bad); !errors.As(err, &ie) {
		t.Errorf("got %v, want *IndexError", err)
	}
}
