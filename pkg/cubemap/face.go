// Package cubemap maps cube-face pixels to viewing directions and
// projects directions onto an equirectangular panorama.
package cubemap

import (
	"github.com/avern/go-cubemap/pkg/core"
)

// Face identifies one of the six cube faces
type Face int

// Cube faces in OpenGL cubemap order: +X, -X, +Y, -Y, +Z, -Z
const (
	FacePosX Face = iota // right
	FaceNegX             // left
	FacePosY             // top
	FaceNegY             // bottom
	FacePosZ             // front
	FaceNegZ             // back
)

// Faces lists all six cube faces in render order
var Faces = [6]Face{FacePosX, FaceNegX, FacePosY, FaceNegY, FacePosZ, FaceNegZ}

// faceBasis holds the fixed orientation of one cube face. Forward points
// through the face center, right and up span the face plane in image
// coordinates (up points down the image, matching the row direction).
type faceBasis struct {
	forward core.Vec3
	right   core.Vec3
	up      core.Vec3
}

// faceBases follows the OpenGL cubemap convention with y-up world axes.
var faceBases = [6]faceBasis{
	FacePosX: {forward: core.NewVec3(1, 0, 0), right: core.NewVec3(0, 0, -1), up: core.NewVec3(0, -1, 0)},
	FaceNegX: {forward: core.NewVec3(-1, 0, 0), right: core.NewVec3(0, 0, 1), up: core.NewVec3(0, -1, 0)},
	FacePosY: {forward: core.NewVec3(0, 1, 0), right: core.NewVec3(1, 0, 0), up: core.NewVec3(0, 0, 1)},
	FaceNegY: {forward: core.NewVec3(0, -1, 0), right: core.NewVec3(1, 0, 0), up: core.NewVec3(0, 0, -1)},
	FacePosZ: {forward: core.NewVec3(0, 0, 1), right: core.NewVec3(1, 0, 0), up: core.NewVec3(0, -1, 0)},
	FaceNegZ: {forward: core.NewVec3(0, 0, -1), right: core.NewVec3(-1, 0, 0), up: core.NewVec3(0, -1, 0)},
}

var faceNames = [6]string{"right", "left", "top", "bottom", "front", "back"}

// String returns the conventional skybox name of the face, used for
// output filenames
func (f Face) String() string {
	if f < FacePosX || f > FaceNegZ {
		return "unknown"
	}
	return faceNames[f]
}

// Direction returns the unit viewing direction through the center of
// pixel (x, y) on face f, for a face of the given size in pixels.
// All x, y in [0, size) produce a valid unit vector.
func (f Face) Direction(x, y, size int) core.Vec3 {
	s := float64(size)
	a := 2*(float64(x)+0.5)/s - 1
	b := 2*(float64(y)+0.5)/s - 1

	basis := faceBases[f]
	return basis.forward.
		Add(basis.right.Multiply(a)).
		Add(basis.up.Multiply(b)).
		Normalize()
}
