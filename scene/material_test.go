package scene

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/snagy/rustrace/types"
)

// A random source that replays a fixed sequence of values.
type fixedRand struct {
	values []float32
	next   int
}

func (r *fixedRand) Float32() float32 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

func TestLambertianAttenuation(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	albedo := types.XYZ(0.2, 0.4, 0.8)
	mat := NewLambertian(albedo)
	normal := types.XYZ(0, 1, 0)
	pos := types.XYZ(1, 0, 1)

	for i := 0; i < 100; i++ {
		in := types.Ray{Origin: types.RandomInUnitSphere(rng).Add(types.XYZ(0, 5, 0)), Direction: types.RandomInUnitSphere(rng)}
		scattered, out, attenuation := mat.Scatter(in, pos, normal, rng)
		if !scattered {
			t.Fatalf("[iteration %d] expected lambertian material to always scatter", i)
		}
		if attenuation != albedo {
			t.Fatalf("[iteration %d] expected attenuation %v; got %v", i, albedo, attenuation)
		}
		if out.Origin != pos {
			t.Fatalf("[iteration %d] expected scattered ray to start at %v; got %v", i, pos, out.Origin)
		}
		// target lies in the unit sphere tangent to the surface at pos
		if d := out.Direction.Sub(normal).Len(); d > 1+1e-5 {
			t.Fatalf("[iteration %d] expected scatter target inside unit sphere around pos+normal; distance %f", i, d)
		}
	}
}

func TestMetallicScatter(t *testing.T) {
	normal := types.XYZ(0, 1, 0)
	pos := types.XYZ(0, 0, 0)
	albedo := types.XYZ(0.7, 0.6, 0.5)

	type spec struct {
		roughness    float32
		dir          types.Vec3
		rngValues    []float32
		expScattered bool
	}
	specs := []spec{
		// no jitter; mirror reflection
		{1.0, types.XYZ(1, -1, 0), []float32{0.5, 0.5, 0.5}, true},
		// perfect mirror ignores the sample
		{0.0, types.XYZ(1, -0.01, 0), []float32{0.5, 0, 0.5}, true},
		// jitter (0, -1, 0) pushes a grazing reflection below the surface
		{1.0, types.XYZ(1, -0.01, 0), []float32{0.5, 0, 0.5}, false},
		// jitter exactly cancels the reflection's normal component
		{1.0, types.XYZ(0, -1, 0), []float32{0.5, 0, 0.5}, false},
	}

	for index, s := range specs {
		mat := NewMetallic(albedo, s.roughness)
		in := types.Ray{Origin: types.XYZ(-1, 1, 0), Direction: s.dir}
		rng := &fixedRand{values: s.rngValues}

		scattered, out, attenuation := mat.Scatter(in, pos, normal, rng)
		if scattered != s.expScattered {
			t.Fatalf("[spec %d] expected scattered %t; got %t", index, s.expScattered, scattered)
		}
		if !scattered {
			continue
		}

		jitter := types.XYZ(2*s.rngValues[0]-1, 2*s.rngValues[1]-1, 2*s.rngValues[2]-1).Mul(s.roughness)
		expDir := types.Reflect(s.dir.Normalize(), normal).Add(jitter)
		if !approxEqual(out.Direction, expDir, 1e-6) {
			t.Fatalf("[spec %d] expected direction %v; got %v", index, expDir, out.Direction)
		}
		if attenuation != albedo {
			t.Fatalf("[spec %d] expected attenuation %v; got %v", index, albedo, attenuation)
		}
	}
}

func TestMetallicRoughnessClamp(t *testing.T) {
	if got := NewMetallic(types.Splat(1), 4).Roughness; got != 1 {
		t.Fatalf("expected roughness to be clamped to 1; got %f", got)
	}
	if got := NewMetallic(types.Splat(1), -1).Roughness; got != 0 {
		t.Fatalf("expected roughness to be clamped to 0; got %f", got)
	}
}

func TestDielectricScatter(t *testing.T) {
	glass := NewDielectric(1.5)
	normal := types.XYZ(0, 1, 0)
	pos := types.XYZ(0, 0, 0)

	type spec struct {
		dir    types.Vec3
		sample float32
		expDir types.Vec3
	}
	specs := []spec{
		// head-on: reflectance is 4%
		{types.XYZ(0, -1, 0), 0.5, types.XYZ(0, -1, 0)},
		{types.XYZ(0, -1, 0), 0.01, types.XYZ(0, 1, 0)},
		// exiting at a shallow angle always reflects, regardless of the sample
		{types.XYZ(1, 0.2, 0), 0.99, types.Reflect(types.XYZ(1, 0.2, 0), normal)},
		{types.XYZ(1, 0.2, 0), 0.0, types.Reflect(types.XYZ(1, 0.2, 0), normal)},
	}

	for index, s := range specs {
		in := types.Ray{Origin: pos.Sub(s.dir), Direction: s.dir}
		scattered, out, attenuation := glass.Scatter(in, pos, normal, &fixedRand{values: []float32{s.sample}})
		if !scattered {
			t.Fatalf("[spec %d] expected dielectric to always scatter", index)
		}
		if attenuation != types.Splat(1) {
			t.Fatalf("[spec %d] expected white attenuation; got %v", index, attenuation)
		}
		if !approxEqual(out.Direction, s.expDir, 1e-5) {
			t.Fatalf("[spec %d] expected direction %v; got %v", index, s.expDir, out.Direction)
		}
	}
}

func TestDielectricReflectRefractRatio(t *testing.T) {
	glass := NewDielectric(1.5)
	normal := types.XYZ(0, 1, 0)
	dir := types.XYZ(1, -1, 0)
	in := types.Ray{Origin: types.XYZ(-1, 1, 0), Direction: dir}
	rng := rand.New(rand.NewSource(5))

	const samples = 20000
	reflections := 0
	for i := 0; i < samples; i++ {
		_, out, _ := glass.Scatter(in, types.Vec3{}, normal, rng)
		if out.Direction.Dot(normal) > 0 {
			reflections++
		}
	}

	cosine := -dir.Dot(normal) / dir.Len()
	exp := Schlick(cosine, 1.5)
	got := float32(reflections) / samples
	if math32.Abs(got-exp) > 0.01 {
		t.Fatalf("expected reflection ratio close to %f; got %f", exp, got)
	}
}

func TestSchlick(t *testing.T) {
	if got := Schlick(1, 1.5); math32.Abs(got-0.04) > 1e-6 {
		t.Fatalf("expected normal incidence reflectance 0.04; got %f", got)
	}
	if got := Schlick(0, 1.5); math32.Abs(got-1) > 1e-6 {
		t.Fatalf("expected grazing reflectance 1; got %f", got)
	}
}
