package scene

import (
	"bytes"
	"fmt"

	"github.com/snagy/rustrace/types"
)

// The scene (world) is an insertion-ordered collection of primitives. Once
// rendering starts the scene is only ever read, so a single instance can be
// shared by all tracers without locking.
type Scene struct {
	Camera *CameraConfig

	Materials  []*Material
	Primitives []*Primitive
}

func NewScene() *Scene {
	return &Scene{
		Materials:  make([]*Material, 0),
		Primitives: make([]*Primitive, 0),
	}
}

// Attach a camera configuration to the scene.
func (s *Scene) SetCamera(camera *CameraConfig) {
	s.Camera = camera
}

// Add a material to the scene.
func (s *Scene) AddMaterial(material *Material) error {
	for _, mat := range s.Materials {
		if mat == material {
			return ErrDuplicateMaterial
		}
	}
	s.Materials = append(s.Materials, material)
	return nil
}

// Add a primitive to the scene.
func (s *Scene) AddPrimitive(primitive *Primitive) error {
	for _, prim := range s.Primitives {
		if prim == primitive {
			return ErrDuplicatePrimitive
		}
	}
	if primitive.Material == nil {
		return ErrMissingMaterial
	}
	if err := validateDimensions(primitive); err != nil {
		return err
	}
	for _, mat := range s.Materials {
		if mat == primitive.Material {
			s.Primitives = append(s.Primitives, primitive)
			return nil
		}
	}

	return ErrUnknownMaterial
}

// Add a material (if not already present) and a primitive that uses it.
func (s *Scene) Add(primitive *Primitive) error {
	if primitive.Material != nil && s.MaterialIndex(primitive.Material) < 0 {
		if err := s.AddMaterial(primitive.Material); err != nil {
			return err
		}
	}
	return s.AddPrimitive(primitive)
}

// Get the index of a material or -1 if it is not part of the scene.
func (s *Scene) MaterialIndex(material *Material) int {
	for idx, mat := range s.Materials {
		if mat == material {
			return idx
		}
	}
	return -1
}

// Find the nearest primitive hit by the ray within (tMin, tMax). When two
// primitives report the same distance the one added first wins. If nothing
// is hit, the returned primitive is nil.
func (s *Scene) Trace(r types.Ray, tMin, tMax float32) (float32, *Primitive) {
	bestT := tMax
	var best *Primitive
	for _, prim := range s.Primitives {
		if t, ok := prim.HitCheck(r, tMin, tMax); ok && t < bestT {
			bestT = t
			best = prim
		}
	}
	return bestT, best
}

// Generate a human readable summary of the scene contents.
func (s *Scene) Stats() string {
	var buf bytes.Buffer
	counts := make(map[PrimitiveType]int)
	for _, prim := range s.Primitives {
		counts[prim.Type]++
	}
	matCounts := make(map[MaterialType]int)
	for _, mat := range s.Materials {
		matCounts[mat.Type]++
	}

	fmt.Fprintf(&buf, "primitives: %d (spheres: %d, boxes: %d)\n", len(s.Primitives), counts[SpherePrimitive], counts[BoxPrimitive])
	fmt.Fprintf(&buf, "materials:  %d (lambertian: %d, metallic: %d, dielectric: %d)",
		len(s.Materials), matCounts[LambertianMaterial], matCounts[MetallicMaterial], matCounts[DielectricMaterial])
	return buf.String()
}

func validateDimensions(p *Primitive) error {
	switch p.Type {
	case SpherePrimitive:
		if p.Radius() <= 0 {
			return ErrInvalidDimensions
		}
	case BoxPrimitive:
		if p.Dimensions[0] <= 0 || p.Dimensions[1] <= 0 || p.Dimensions[2] <= 0 {
			return ErrInvalidDimensions
		}
	default:
		return ErrUnknownPrimitive
	}
	return nil
}
