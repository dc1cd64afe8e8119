package scene

import (
	"github.com/snagy/rustrace/types"
)

const (
	gridMin = -4
	gridMax = 4
)

// The camera used for the procedural scene.
func DefaultCamera() *CameraConfig {
	return &CameraConfig{
		LookFrom: types.XYZ(7, 2, 2),
		LookAt:   types.XYZ(0, 0, 0),
		Up:       types.XYZ(0, 1, 0),
		FOV:      40,
		Aperture: 0.3,
	}
}

// Generate the default scene: a large ground sphere, a grid of small
// randomly placed objects and three large feature objects. Each small object
// is a box with probability boxPct; otherwise it is a sphere.
func NewProceduralScene(boxPct float32, rng types.Rand) *Scene {
	sc := NewScene()
	sc.SetCamera(DefaultCamera())

	mustAdd(sc, NewSphere(types.XYZ(0, -1000, 0), 1000, NewLambertian(types.XYZ(0.4, 0.4, 0.5))))

	for a := gridMin; a < gridMax; a++ {
		for b := gridMin; b < gridMax; b++ {
			matVal := rng.Float32()
			typeVal := rng.Float32()
			dims := types.XYZ(
				rng.Float32()*0.1+0.2,
				rng.Float32()*0.1+0.2,
				rng.Float32()*0.1+0.2,
			)
			center := types.XYZ(
				float32(a)+0.6*rng.Float32(),
				dims.Z(),
				float32(b)+0.6*rng.Float32(),
			)

			var mat *Material
			switch {
			case matVal < 0.8:
				mat = NewLambertian(types.XYZ(
					rng.Float32()*rng.Float32(),
					rng.Float32()*rng.Float32(),
					rng.Float32()*rng.Float32(),
				))
			case matVal < 0.95:
				mat = NewMetallic(types.XYZ(
					0.5*(1+rng.Float32()),
					0.5*(1+rng.Float32()),
					0.5*(1+rng.Float32()),
				), 0.5*rng.Float32())
			default:
				mat = NewDielectric(1.5)
			}

			if typeVal < boxPct {
				mustAdd(sc, NewBox(center, dims, mat))
			} else {
				mustAdd(sc, NewSphere(center, dims.Z(), mat))
			}
		}
	}

	mustAdd(sc, NewBox(types.XYZ(-4, 1, -1), types.XYZ(1, 2, 1), NewLambertian(types.XYZ(0.1, 0.2, 0.5))))
	mustAdd(sc, NewBox(types.XYZ(4, 1, -1), types.XYZ(1, 1, 1), NewMetallic(types.XYZ(0.7, 0.6, 0.5), 0.1)))
	mustAdd(sc, NewSphere(types.XYZ(0, 1, -1), 1, NewDielectric(1.5)))

	return sc
}

// Generated primitives are always valid.
func mustAdd(sc *Scene, prim *Primitive) {
	if err := sc.Add(prim); err != nil {
		panic(err)
	}
}
