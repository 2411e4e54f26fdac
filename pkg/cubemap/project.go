package cubemap

import (
	"math"

	"github.com/avern/go-cubemap/pkg/core"
)

// Project maps a unit viewing direction to normalized equirectangular
// coordinates. u in [0, 1) spans the full 360° of azimuth and wraps at
// the seam; v in [0, 1] runs from the up pole (v=0) to the down pole
// (v=1). The azimuth reference places +X at u=0.75 and -Z at u=0.5.
func Project(dir core.Vec3) (u, v float64) {
	phi := math.Atan2(dir.X, -dir.Z)

	// Clamp before asin: accumulated float error can push |Y| past 1
	// near the poles, where asin would return NaN.
	y := dir.Y
	if y > 1 {
		y = 1
	} else if y < -1 {
		y = -1
	}
	theta := math.Asin(y)

	u = (phi + math.Pi) / (2 * math.Pi)
	if u >= 1 {
		// atan2 returns +Pi for directions exactly on the seam
		u -= 1
	}
	v = (math.Pi/2 - theta) / math.Pi
	return u, v
}
