package cpu

import "errors"

var (
	ErrSceneNotDefined  = errors.New("cpu tracer: no scene defined")
	ErrCameraNotDefined = errors.New("cpu tracer: no camera defined")
	ErrNotSetup         = errors.New("cpu tracer: Trace called before Setup")
	ErrInvalidRequest   = errors.New("cpu tracer: invalid block request")
)
