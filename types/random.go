package types

// The Rand interface is implemented by uniform random sources such as
// *rand.Rand.
type Rand interface {
	// Return a uniform float in [0, 1).
	Float32() float32
}

// Generate a uniformly distributed point inside the unit sphere using
// rejection sampling.
func RandomInUnitSphere(rng Rand) Vec3 {
	for {
		p := Vec3{
			2*rng.Float32() - 1,
			2*rng.Float32() - 1,
			2*rng.Float32() - 1,
		}
		if p.LenSq() <= 1.0 {
			return p
		}
	}
}

// Generate a uniformly distributed point inside the unit disk lying on the
// x-y plane using rejection sampling.
func RandomInUnitDisk(rng Rand) Vec3 {
	for {
		p := Vec3{
			2*rng.Float32() - 1,
			2*rng.Float32() - 1,
			0,
		}
		if p.LenSq() < 1.0 {
			return p
		}
	}
}
