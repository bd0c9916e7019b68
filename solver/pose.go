package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

// CameraPose is a camera relative pose re-expressed in a gravity aligned
// world frame
type CameraPose struct {
	// Orientation holds the rotation about the X, Y and Z axis in degrees
	// that undoes the camera's own tilt, roll and yaw
	Orientation r3.Vec
	// Translation is the target offset with the camera rotation removed
	Translation r3.Vec
}

// RotationMatrix converts a rotation vector (axis scaled by angle in
// radians) into a 3x3 rotation matrix using the Rodrigues formula
func RotationMatrix(rvec r3.Vec) *mat.Dense {

	r := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})

	theta := r3.Norm(rvec)

	if theta < 1e-12 {
		return r
	}

	k := r3.Scale(1/theta, rvec)

	// cross product matrix of the unit axis
	kx := mat.NewDense(3, 3, []float64{
		0, -k.Z, k.Y,
		k.Z, 0, -k.X,
		-k.Y, k.X, 0,
	})

	kx2 := mat.NewDense(3, 3, nil)
	kx2.Mul(kx, kx)

	sinTerm := mat.NewDense(3, 3, nil)
	sinTerm.Scale(math.Sin(theta), kx)

	cosTerm := mat.NewDense(3, 3, nil)
	cosTerm.Scale(1-math.Cos(theta), kx2)

	r.Add(r, sinTerm)
	r.Add(r, cosTerm)

	return r
}

// EulerZYX decomposes a rotation matrix R = Rz * Ry * Rx into its rotation
// angles in degrees about the X, Y and Z axis
func EulerZYX(r mat.Matrix) (x, y, z float64) {

	r11 := r.At(0, 0)
	r21 := r.At(1, 0)
	r31 := r.At(2, 0)
	r32 := r.At(2, 1)
	r33 := r.At(2, 2)

	z = degrees(math.Atan2(r21, r11))
	y = degrees(math.Atan2(-r31, math.Sqrt(r32*r32+r33*r33)))
	x = degrees(math.Atan2(r32, r33))

	return x, y, z
}

// RotationVectorFromEuler returns the rotation vector of R = Rz * Ry * Rx
// for the given angles in degrees
func RotationVectorFromEuler(x, y, z float64) r3.Vec {

	r := mat.NewDense(3, 3, nil)
	r.Mul(axisMatrix(axisZ, z), axisMatrix(axisY, y))
	r.Mul(r, axisMatrix(axisX, x))

	return rotationVector(r)
}

// axisMatrix returns the rotation matrix of deg degrees about a unit axis
func axisMatrix(axis r3.Vec, deg float64) *mat.Dense {
	return RotationMatrix(r3.Scale(radians(deg), axis))
}

// rotationVector converts a rotation matrix back into a rotation vector, the
// inverse of RotationMatrix
func rotationVector(r mat.Matrix) r3.Vec {

	cosTheta := (r.At(0, 0) + r.At(1, 1) + r.At(2, 2) - 1) / 2
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	theta := math.Acos(cosTheta)

	if theta < 1e-12 {
		return r3.Vec{}
	}

	sinTheta := math.Sin(theta)

	if sinTheta > 1e-6 {
		axis := r3.Vec{
			X: r.At(2, 1) - r.At(1, 2),
			Y: r.At(0, 2) - r.At(2, 0),
			Z: r.At(1, 0) - r.At(0, 1),
		}
		return r3.Scale(theta/(2*sinTheta), axis)
	}

	// theta is close to pi, recover the axis from the diagonal
	axis := r3.Vec{
		X: math.Sqrt(math.Max(0, (r.At(0, 0)+1)/2)),
		Y: math.Sqrt(math.Max(0, (r.At(1, 1)+1)/2)),
		Z: math.Sqrt(math.Max(0, (r.At(2, 2)+1)/2)),
	}

	if r.At(0, 1)+r.At(1, 0) < 0 {
		axis.Y = -axis.Y
	}

	if r.At(0, 2)+r.At(2, 0) < 0 {
		axis.Z = -axis.Z
	}

	return r3.Scale(theta, r3.Unit(axis))
}

// axisRotate rotates v by deg degrees about a unit axis
func axisRotate(v r3.Vec, axis r3.Vec, deg float64) r3.Vec {
	return r3.NewRotation(radians(deg), axis).Rotate(v)
}

// SolveCameraPose removes the camera rotation described by rvec from the
// translation tvec.  The rotation is decomposed into Z, Y, X angles and the
// translation is un-rotated about Z, then Y, then X, leaving it expressed in
// a gravity aligned frame.  The returned orientation is the negated X, Y, Z
// angles in degrees.
func SolveCameraPose(rvec, tvec r3.Vec) CameraPose {

	thetaX, thetaY, thetaZ := EulerZYX(RotationMatrix(rvec))

	t := tvec
	t = axisRotate(t, axisZ, -thetaZ)
	t = axisRotate(t, axisY, -thetaY)
	t = axisRotate(t, axisX, -thetaX)

	return CameraPose{
		Orientation: r3.Vec{X: -thetaX, Y: -thetaY, Z: -thetaZ},
		Translation: t,
	}
}
