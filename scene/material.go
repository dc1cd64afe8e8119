package scene

import (
	"github.com/chewxy/math32"
	"github.com/snagy/rustrace/types"
)

type MaterialType uint8

const (
	LambertianMaterial MaterialType = iota
	MetallicMaterial
	DielectricMaterial
)

func (t MaterialType) String() string {
	switch t {
	case LambertianMaterial:
		return "lambertian"
	case MetallicMaterial:
		return "metallic"
	case DielectricMaterial:
		return "dielectric"
	}
	return "unknown"
}

// Defines a scene material. Materials carry no mutable state and can be
// shared by any number of tracers.
type Material struct {
	// The type of the material.
	Type MaterialType

	// Base color (lambertian and metallic materials).
	Albedo types.Vec3

	// Perturbation applied to reflected rays in the [0, 1] range (metallic only).
	Roughness float32

	// Index of refraction (dielectric only).
	IOR float32
}

// Create a diffuse material.
func NewLambertian(albedo types.Vec3) *Material {
	return &Material{
		Type:   LambertianMaterial,
		Albedo: albedo,
	}
}

// Create a rough metal material. Roughness is clamped to [0, 1].
func NewMetallic(albedo types.Vec3, roughness float32) *Material {
	if roughness < 0 {
		roughness = 0
	} else if roughness > 1 {
		roughness = 1
	}
	return &Material{
		Type:      MetallicMaterial,
		Albedo:    albedo,
		Roughness: roughness,
	}
}

// Create a colorless glass-like material.
func NewDielectric(ior float32) *Material {
	return &Material{
		Type: DielectricMaterial,
		IOR:  ior,
	}
}

// Scatter an incoming ray that hit a surface at pos with the given unit
// outward normal. It returns false if the ray was absorbed; otherwise it
// returns the scattered ray and the color attenuation for this bounce.
func (m *Material) Scatter(in types.Ray, pos, normal types.Vec3, rng types.Rand) (bool, types.Ray, types.Vec3) {
	switch m.Type {
	case LambertianMaterial:
		target := pos.Add(normal).Add(types.RandomInUnitSphere(rng))
		return true, types.Ray{Origin: pos, Direction: target.Sub(pos)}, m.Albedo
	case MetallicMaterial:
		dir := types.Reflect(in.Direction.Normalize(), normal).Add(types.RandomInUnitSphere(rng).Mul(m.Roughness))
		if dir.Dot(normal) <= 0 {
			return false, types.Ray{}, types.Vec3{}
		}
		return true, types.Ray{Origin: pos, Direction: dir}, m.Albedo
	case DielectricMaterial:
		return true, m.scatterDielectric(in, pos, normal, rng), types.Splat(1)
	}

	return false, types.Ray{}, types.Vec3{}
}

func (m *Material) scatterDielectric(in types.Ray, pos, normal types.Vec3, rng types.Rand) types.Ray {
	var (
		outwardNormal types.Vec3
		niOverNt      float32
		cosine        float32
	)

	dDotN := in.Direction.Dot(normal)
	if dDotN <= 0 {
		// entering the medium
		outwardNormal = normal
		niOverNt = 1.0 / m.IOR
		cosine = -dDotN / in.Direction.Len()
	} else {
		outwardNormal = normal.Mul(-1)
		niOverNt = m.IOR
		cosine = m.IOR * dDotN / in.Direction.Len()
	}

	reflected := types.Reflect(in.Direction, normal)
	refracted, ok := types.Refract(in.Direction, outwardNormal, niOverNt)
	if !ok || rng.Float32() < Schlick(cosine, m.IOR) {
		return types.Ray{Origin: pos, Direction: reflected}
	}

	return types.Ray{Origin: pos, Direction: refracted}
}

// Approximate Fresnel reflectance for the given incidence cosine and index
// of refraction.
func Schlick(cosine, ior float32) float32 {
	r0 := (1 - ior) / (1 + ior)
	r0 = r0 * r0
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}
