package types

// A ray with an origin and a (not necessarily normalized) direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// Get the point origin + t*direction.
func (r Ray) PointAt(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
