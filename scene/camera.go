package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/snagy/rustrace/types"
)

// The camera settings that can be stored alongside a scene. The aspect ratio
// is not part of the settings as it depends on the rendered frame.
type CameraConfig struct {
	LookFrom types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Vertical field of view in degrees.
	FOV float32

	// Lens diameter. Zero disables depth of field.
	Aperture float32

	// Distance to the plane in perfect focus. If zero, the distance between
	// LookFrom and LookAt is used.
	FocusDist float32
}

// Check that the settings describe a camera with a well defined basis.
func (cfg CameraConfig) Validate() error {
	viewDir := cfg.LookFrom.Sub(cfg.LookAt)
	switch {
	case viewDir.LenSq() == 0:
		return errors.Wrap(ErrInvalidCamera, "look_from and look_at must differ")
	case cfg.Up.LenSq() == 0:
		return errors.Wrap(ErrInvalidCamera, "up must be non-zero")
	case cfg.Up.Normalize().Cross(viewDir.Normalize()).LenSq() < 1e-12:
		return errors.Wrap(ErrInvalidCamera, "up must not be parallel to the view direction")
	case !(cfg.FOV > 0 && cfg.FOV < 180):
		return errors.Wrapf(ErrInvalidCamera, "fov %g must be in (0, 180)", cfg.FOV)
	case !(cfg.Aperture >= 0):
		return errors.Wrapf(ErrInvalidCamera, "aperture %g must not be negative", cfg.Aperture)
	case !(cfg.FocusDist >= 0):
		return errors.Wrapf(ErrInvalidCamera, "focus_dist %g must not be negative", cfg.FocusDist)
	}
	return nil
}

// Build a camera for a frame with the given aspect ratio.
func (cfg CameraConfig) Build(aspect float32) *Camera {
	focusDist := cfg.FocusDist
	if focusDist <= 0 {
		focusDist = cfg.LookFrom.Sub(cfg.LookAt).Len()
	}
	return NewCamera(cfg.LookFrom, cfg.LookAt, cfg.Up, cfg.FOV, aspect, cfg.Aperture, focusDist)
}

// A thin lens camera. Cameras are immutable once created.
type Camera struct {
	origin          types.Vec3
	lowerLeftCorner types.Vec3
	horizontal      types.Vec3
	vertical        types.Vec3
	u, v, w         types.Vec3
	lensRadius      float32
}

// Create a camera located at lookFrom looking at lookAt. The field of view
// is specified in degrees.
func NewCamera(lookFrom, lookAt, up types.Vec3, fov, aspect, aperture, focusDist float32) *Camera {
	theta := fov * math32.Pi / 180
	halfHeight := math32.Tan(theta / 2)
	halfWidth := aspect * halfHeight

	w := lookFrom.Sub(lookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	return &Camera{
		origin: lookFrom,
		lowerLeftCorner: lookFrom.
			Sub(u.Mul(halfWidth * focusDist)).
			Sub(v.Mul(halfHeight * focusDist)).
			Sub(w.Mul(focusDist)),
		horizontal: u.Mul(2 * halfWidth * focusDist),
		vertical:   v.Mul(2 * halfHeight * focusDist),
		u:          u,
		v:          v,
		w:          w,
		lensRadius: aperture / 2,
	}
}

// Generate a ray for the image plane coordinates (s, t). The ray origin is
// jittered across the lens to simulate depth of field.
func (c *Camera) GetRay(s, t float32, rng types.Rand) types.Ray {
	rd := types.RandomInUnitDisk(rng).Mul(c.lensRadius)
	offset := c.u.Mul(rd[0]).Add(c.v.Mul(rd[1]))

	return types.Ray{
		Origin: c.origin.Add(offset),
		Direction: c.lowerLeftCorner.
			Add(c.horizontal.Mul(s)).
			Add(c.vertical.Mul(t)).
			Sub(c.origin).
			Sub(offset),
	}
}

// Get the camera basis vectors.
func (c *Camera) Basis() (u, v, w types.Vec3) {
	return c.u, c.v, c.w
}

func (c *Camera) String() string {
	return fmt.Sprintf(
		"Camera:\nOrigin : (%3.3f, %3.3f, %3.3f)\nLL     : (%3.3f, %3.3f, %3.3f)\nH      : (%3.3f, %3.3f, %3.3f)\nV      : (%3.3f, %3.3f, %3.3f)\nLens   : %3.3f",
		c.origin[0], c.origin[1], c.origin[2],
		c.lowerLeftCorner[0], c.lowerLeftCorner[1], c.lowerLeftCorner[2],
		c.horizontal[0], c.horizontal[1], c.horizontal[2],
		c.vertical[0], c.vertical[1], c.vertical[2],
		c.lensRadius,
	)
}
