package solver

import (
	"errors"

	"github.com/swdee/go-rmcv"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDegenerateArmour is returned when an armour has no measurable height
var ErrDegenerateArmour = errors.New("armour has zero height")

// PinholeCamera holds the intrinsic parameters of an undistorted camera in
// pixels
type PinholeCamera struct {
	Fx float64
	Fy float64
	Cx float64
	Cy float64
}

// EstimateTranslation returns a monocular estimate of the offset of an
// armour from the camera using its known physical plateHeight, the result is
// in the same unit as plateHeight.  It is a fallback for setups without a
// full PnP solve.
func (c PinholeCamera) EstimateTranslation(a rmcv.Armour, plateHeight float64) (r3.Vec, error) {

	v := a.Vertices

	heightL := float64(rmcv.PointDistance(v[0], v[1]))
	heightR := float64(rmcv.PointDistance(v[3], v[2]))
	pixels := (heightL + heightR) / 2

	if pixels <= 0 {
		return r3.Vec{}, ErrDegenerateArmour
	}

	z := c.Fy * plateHeight / pixels

	var u, w float64
	for _, p := range v {
		u += float64(p.X)
		w += float64(p.Y)
	}
	u /= 4
	w /= 4

	return r3.Vec{
		X: (u - c.Cx) * z / c.Fx,
		Y: (w - c.Cy) * z / c.Fy,
		Z: z,
	}, nil
}
