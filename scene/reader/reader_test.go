package reader

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/snagy/rustrace/asset"
	"github.com/snagy/rustrace/scene"
	"github.com/snagy/rustrace/types"
)

const yamlScene = `
camera:
  look_from: [7, 2, 2]
  look_at: [0, 0, 0]
  up: [0, 1, 0]
  fov: 40
  aperture: 0.3
materials:
  ground:
    type: lambertian
    albedo: [0.4, 0.4, 0.5]
  steel:
    type: metallic
    albedo: [0.7, 0.6, 0.5]
    roughness: 0.1
  glass:
    type: dielectric
    ior: 1.5
primitives:
  - type: sphere
    origin: [0, -1000, 0]
    radius: 1000
    material: ground
  - type: box
    origin: [4, 1, -1]
    dims: [1, 1, 1]
    material: steel
  - type: sphere
    origin: [0, 1, -1]
    radius: 1
    material: glass
`

const jsonScene = `{
  "materials": {"red": {"type": "lambertian", "albedo": [1, 0, 0]}},
  "primitives": [{"type": "sphere", "origin": [0, 0, -1], "radius": 0.5, "material": "red"}]
}`

func TestReadYamlScene(t *testing.T) {
	sc, err := (&yamlReader{}).Read(asset.NewResourceFromStream("scene.yaml", strings.NewReader(yamlScene)))
	if err != nil {
		t.Fatal(err)
	}

	if len(sc.Primitives) != 3 || len(sc.Materials) != 3 {
		t.Fatalf("expected 3 primitives and 3 materials; got %d and %d", len(sc.Primitives), len(sc.Materials))
	}

	box := sc.Primitives[1]
	if box.Type != scene.BoxPrimitive || box.Origin != types.XYZ(4, 1, -1) || box.Dimensions != types.Splat(1) {
		t.Fatalf("unexpected box primitive %+v", box)
	}
	if box.Material.Type != scene.MetallicMaterial || box.Material.Roughness != 0.1 {
		t.Fatalf("unexpected box material %+v", box.Material)
	}
	if sc.Primitives[2].Material.IOR != 1.5 {
		t.Fatalf("expected glass ior 1.5; got %f", sc.Primitives[2].Material.IOR)
	}

	if sc.Camera == nil || sc.Camera.FOV != 40 || sc.Camera.LookFrom != types.XYZ(7, 2, 2) {
		t.Fatalf("unexpected camera %+v", sc.Camera)
	}
}

func TestReadSceneFile(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"scene.yml":  yamlScene,
		"scene.json": jsonScene,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadScene(path); err != nil {
			t.Fatalf("[%s] unexpected error: %v", name, err)
		}
	}
}

func TestReadRemoteScene(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jsonScene))
	}))
	defer server.Close()

	sc, err := ReadScene(server.URL + "/scenes/red.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Primitives) != 1 {
		t.Fatalf("expected 1 primitive; got %d", len(sc.Primitives))
	}
}

func TestReadSceneErrors(t *testing.T) {
	dir := t.TempDir()

	type spec struct {
		file    string
		content string
		expErr  string
	}
	specs := []spec{
		{"scene.obj", "", "unsupported file format"},
		{"unknown-field.yaml", "materials: {}\nprimitives: []\nlights: []\n", "could not decode"},
		{"bad-vec.yaml", "materials:\n  m: {type: lambertian, albedo: [1, 1]}\nprimitives: []\n", "could not decode"},
		{"bad-ref.yaml", "materials: {}\nprimitives:\n  - {type: sphere, origin: [0, 0, 0], radius: 1, material: m}\n", "unknown material"},
		{"missing-include.yaml", "include: [nowhere.yaml]\n", "could not open"},
		{"include-format.yaml", "include: [scene.obj]\n", "unsupported file format"},
		{"cycle.yaml", "include: [cycle.yaml]\n", "nested deeper"},
	}

	for index, s := range specs {
		path := filepath.Join(dir, s.file)
		if err := os.WriteFile(path, []byte(s.content), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := ReadScene(path)
		if err == nil || !strings.Contains(err.Error(), s.expErr) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", index, s.expErr, err)
		}
	}

	if _, err := ReadScene(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestReadSceneIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"world.yaml": `
include: [parts/ground.yaml, parts/glass.json]
materials:
  red: {type: lambertian, albedo: [1, 0, 0]}
primitives:
  - {type: sphere, origin: [0, 1, 0], radius: 1, material: red}
`,
		// nested includes resolve relative to the including file
		"parts/ground.yaml": `
include: [../camera.yaml]
materials:
  ground: {type: lambertian, albedo: [0.5, 0.5, 0.5]}
primitives:
  - {type: sphere, origin: [0, -1000, 0], radius: 1000, material: ground}
`,
		"parts/glass.json": `{
  "materials": {"glass": {"type": "dielectric", "ior": 1.5}},
  "primitives": [{"type": "box", "origin": [3, 1, 0], "dims": [1, 1, 1], "material": "glass"}]
}`,
		"camera.yaml": `
camera: {look_from: [7, 2, 2], look_at: [0, 0, 0], up: [0, 1, 0], fov: 40, aperture: 0}
`,
	})

	sc, err := ReadScene(filepath.Join(dir, "world.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if len(sc.Primitives) != 3 || len(sc.Materials) != 3 {
		t.Fatalf("expected 3 primitives and 3 materials; got %d and %d", len(sc.Primitives), len(sc.Materials))
	}
	expOrder := []scene.MaterialType{scene.LambertianMaterial, scene.LambertianMaterial, scene.DielectricMaterial}
	for index, prim := range sc.Primitives {
		if prim.Material.Type != expOrder[index] {
			t.Fatalf("[primitive %d] expected material %v; got %v", index, expOrder[index], prim.Material.Type)
		}
	}
	if sc.Primitives[1].Origin != types.XYZ(0, -1000, 0) {
		t.Fatalf("expected included primitives to follow the local ones; got %v", sc.Primitives[1].Origin)
	}
	if sc.Camera == nil || sc.Camera.FOV != 40 {
		t.Fatalf("expected camera from nested include; got %+v", sc.Camera)
	}
}

func TestReadSceneDuplicateIncludedMaterial(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"world.yaml": "include: [other.yaml]\nmaterials:\n  m: {type: lambertian, albedo: [1, 1, 1]}\nprimitives: []\n",
		"other.yaml": "materials:\n  m: {type: dielectric, ior: 1.5}\nprimitives: []\n",
	})

	_, err := ReadScene(filepath.Join(dir, "world.yaml"))
	if errors.Cause(err) != scene.ErrDuplicateMaterial {
		t.Fatalf("expected error %v; got %v", scene.ErrDuplicateMaterial, err)
	}
}

func TestReadRemoteSceneIncludes(t *testing.T) {
	var (
		mu        sync.Mutex
		requested []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/scenes/world.yaml":
			w.Write([]byte("include: [shapes/red.json]\n"))
		case "/scenes/shapes/red.json":
			w.Write([]byte(jsonScene))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	sc, err := ReadScene(server.URL + "/scenes/world.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Primitives) != 1 {
		t.Fatalf("expected 1 primitive; got %d", len(sc.Primitives))
	}
	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]string{"/scenes/world.yaml", "/scenes/shapes/red.json"}, requested); diff != "" {
		t.Fatalf("unexpected requests (-want +got):\n%s", diff)
	}
}
