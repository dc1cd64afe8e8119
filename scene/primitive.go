package scene

import (
	"github.com/chewxy/math32"
	"github.com/snagy/rustrace/types"
)

type PrimitiveType uint32

const (
	SpherePrimitive PrimitiveType = iota
	BoxPrimitive
)

func (t PrimitiveType) String() string {
	switch t {
	case SpherePrimitive:
		return "sphere"
	case BoxPrimitive:
		return "box"
	}
	return "unknown"
}

// The result of intersecting a ray with a primitive.
type HitRecord struct {
	T        float32
	Position types.Vec3

	// Unit length normal pointing away from the surface.
	Normal types.Vec3
}

// Defines a scene primitive.
type Primitive struct {
	// The primitive type.
	Type PrimitiveType

	// The primitive center.
	Origin types.Vec3

	// Primitive dimensions. Spheres store their radius in the first
	// component; boxes store their half extents.
	Dimensions types.Vec3

	// The primitive material. Must be added to the scene before the primitive
	Material *Material
}

// Create new sphere primitive.
func NewSphere(origin types.Vec3, radius float32, material *Material) *Primitive {
	return &Primitive{
		Type:       SpherePrimitive,
		Origin:     origin,
		Dimensions: types.Vec3{radius},
		Material:   material,
	}
}

// Create new axis-aligned box primitive centered at origin.
func NewBox(origin types.Vec3, halfExtents types.Vec3, material *Material) *Primitive {
	return &Primitive{
		Type:       BoxPrimitive,
		Origin:     origin,
		Dimensions: halfExtents,
		Material:   material,
	}
}

// Get the sphere radius.
func (p *Primitive) Radius() float32 {
	return p.Dimensions[0]
}

// Find the smallest ray parameter in the open (tMin, tMax) interval where
// the ray intersects the primitive.
func (p *Primitive) HitCheck(r types.Ray, tMin, tMax float32) (float32, bool) {
	switch p.Type {
	case SpherePrimitive:
		return p.sphereHitCheck(r, tMin, tMax)
	case BoxPrimitive:
		return p.boxHitCheck(r, tMin, tMax)
	}
	return 0, false
}

// Calculate the hit position and normal for a ray parameter that was
// previously returned by HitCheck.
func (p *Primitive) Hit(r types.Ray, t float32) HitRecord {
	pos := r.PointAt(t)

	var normal types.Vec3
	switch p.Type {
	case SpherePrimitive:
		normal = pos.Sub(p.Origin).Normalize()
	case BoxPrimitive:
		normal = p.boxNormal(pos)
	}

	return HitRecord{T: t, Position: pos, Normal: normal}
}

// Calculate the hit for t and forward it to the primitive material.
func (p *Primitive) HitProcess(r types.Ray, t float32, rng types.Rand) (bool, types.Ray, types.Vec3) {
	hit := p.Hit(r, t)
	return p.Material.Scatter(r, hit.Position, hit.Normal, rng)
}

// Solve a*t^2 + 2b*t + c = 0 and test the nearest root first.
func (p *Primitive) sphereHitCheck(r types.Ray, tMin, tMax float32) (float32, bool) {
	radius := p.Radius()
	oc := r.Origin.Sub(p.Origin)
	a := r.Direction.Dot(r.Direction)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math32.Sqrt(discriminant)
	t := (-b - sqrtD) / a
	if t > tMin && t < tMax {
		return t, true
	}

	t = (-b + sqrtD) / a
	if t > tMin && t < tMax {
		return t, true
	}

	return 0, false
}

// Slab test against the three pairs of axis-aligned planes. A zero direction
// component yields infinite slab bounds which never constrain the interval;
// the NaN produced when the origin also lies on a slab plane is treated the
// same way.
func (p *Primitive) boxHitCheck(r types.Ray, tMin, tMax float32) (float32, bool) {
	boxMin := p.Origin.Sub(p.Dimensions)
	boxMax := p.Origin.Add(p.Dimensions)

	tNear := math32.Inf(-1)
	tFar := math32.Inf(1)
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / r.Direction[axis]
		t0 := (boxMin[axis] - r.Origin[axis]) * invD
		t1 := (boxMax[axis] - r.Origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if !math32.IsNaN(t0) && t0 > tNear {
			tNear = t0
		}
		if !math32.IsNaN(t1) && t1 < tFar {
			tFar = t1
		}
	}

	if tNear > tFar {
		return 0, false
	}

	if tNear > tMin && tNear < tMax {
		return tNear, true
	}

	// The ray starts inside the box; report the exit point
	if tFar > tMin && tFar < tMax {
		return tFar, true
	}

	return 0, false
}

// Pick the face normal from the dominant axis of the hit position in box
// local space. Ties resolve to z, then x, then y.
func (p *Primitive) boxNormal(pos types.Vec3) types.Vec3 {
	local := pos.Sub(p.Origin).DivVec(p.Dimensions)
	ax, ay, az := math32.Abs(local[0]), math32.Abs(local[1]), math32.Abs(local[2])

	var axis int
	switch {
	case az >= ax && az >= ay:
		axis = 2
	case ax >= ay:
		axis = 0
	default:
		axis = 1
	}

	var normal types.Vec3
	normal[axis] = math32.Copysign(1, local[axis])
	return normal
}
