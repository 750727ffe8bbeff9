package planet

import (
	gomath "math"

	"github.com/Faultbox/planet-clipmap/pkg/math"
)

// Fixed camera looking at the origin from above one corner of the mesh.
const (
	fovY      = gomath.Pi / 3
	nearPlane = 0.001
	farPlane  = 10
)

var (
	cameraEye = math.Vec3{X: -2, Y: -2, Z: 2}
	cameraUp  = math.Vec3{Z: 1}
)

// ViewProj returns projection times view for a viewport of the given aspect ratio.
func ViewProj(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	proj := math.Perspective(fovY, aspect, nearPlane, farPlane)
	view := math.LookAt(cameraEye, math.Vec3{}, cameraUp)
	return proj.Mul(view)
}
