package scene

import "errors"

var (
	ErrDuplicateMaterial  = errors.New("scene: material already added")
	ErrDuplicatePrimitive = errors.New("scene: primitive already added")
	ErrMissingMaterial    = errors.New("scene: no material assigned to primitive")
	ErrUnknownMaterial    = errors.New("scene: primitive references unknown material; ensure that the material is added to the scene before adding the primitive")
	ErrUnknownPrimitive   = errors.New("scene: unknown primitive type")
	ErrInvalidDimensions  = errors.New("scene: primitive dimensions must be positive")
	ErrInvalidCamera      = errors.New("scene: invalid camera settings")
)
