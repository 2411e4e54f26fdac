package cubemap

import "github.com/avern/go-cubemap/pkg/core"

// RotateZUp converts a y-up viewing direction to the z-up convention
// used by renderers that treat z as the vertical axis. It is a pure
// axis permutation with sign flips, not a general rotation.
func RotateZUp(dir core.Vec3) core.Vec3 {
	return core.Vec3{X: dir.X, Y: -dir.Z, Z: dir.Y}
}

// RotateZUpInverse undoes RotateZUp, restoring the y-up direction.
func RotateZUpInverse(dir core.Vec3) core.Vec3 {
	return core.Vec3{X: dir.X, Y: dir.Z, Z: -dir.Y}
}
