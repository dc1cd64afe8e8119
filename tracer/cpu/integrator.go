package cpu

import (
	"github.com/snagy/rustrace/scene"
	"github.com/snagy/rustrace/types"
)

const (
	// The default number of bounces before a path is terminated.
	DefaultMaxDepth = 50

	// Intersection interval used for all traced rays. The lower bound
	// suppresses self intersections of scattered rays.
	tMin float32 = 0.001
	tMax float32 = 100000
)

var (
	skyHorizon = types.XYZ(1, 1, 1)
	skyZenith  = types.XYZ(0.5, 0.7, 1.0)
)

// Background radiance for rays that escape the scene: a vertical gradient
// from white at the horizon to light blue overhead.
func Sky(r types.Ray) types.Vec3 {
	t := 0.5 * (r.Direction.Normalize().Y() + 1)
	return types.Lerp(skyHorizon, skyZenith, t)
}

// Estimate the radiance arriving along ray r. Depth is the number of bounces
// the path has already taken; paths that exceed maxDepth contribute no
// light.
//
// The path is followed iteratively with the attenuation product accumulated
// along the way which is equivalent to
// attenuation * Color(scattered, depth+1).
func Color(r types.Ray, sc *scene.Scene, depth, maxDepth int, rng types.Rand) types.Vec3 {
	throughput := types.Splat(1)
	for ; depth <= maxDepth; depth++ {
		t, prim := sc.Trace(r, tMin, tMax)
		if prim == nil {
			return throughput.MulVec(Sky(r))
		}

		scattered, next, attenuation := prim.HitProcess(r, t, rng)
		if !scattered {
			return types.Vec3{}
		}

		throughput = throughput.MulVec(attenuation)
		r = next
	}

	return types.Vec3{}
}
