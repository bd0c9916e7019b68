package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/swdee/go-rmcv"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrNotImplemented is returned for compensation modes that have no
	// ballistic model
	ErrNotImplemented = errors.New("compensate mode not implemented")
	// ErrOutOfRange is returned when no elevation angle reaches the target
	ErrOutOfRange = errors.New("target out of projectile range")
	// ErrMuzzleVelocity is returned for a non positive muzzle velocity
	ErrMuzzleVelocity = errors.New("muzzle velocity must be positive")
)

// BallisticParams defines the projectile model.  Lengths are in metres and
// must match the units of the translation vector given to SolveShootFactor.
type BallisticParams struct {
	// Gravity is the gravitational acceleration in m/s^2
	Gravity float64
	// MuzzleVelocity is the projectile launch speed in m/s
	MuzzleVelocity float64
	// DeltaHeight is the height of the target above the gun in metres
	DeltaHeight float64
}

// DefaultBallisticParams returns an instance of BallisticParams configured
// with default values
// - Gravity: 9.8
// - Muzzle Velocity: 15
// - Delta Height: 0
func DefaultBallisticParams() BallisticParams {
	return BallisticParams{
		Gravity:        9.8,
		MuzzleVelocity: 15,
		DeltaHeight:    0,
	}
}

// ProjectileAngle returns the low arc elevation angle in radians at which a
// drag free projectile launched at v0 under gravity g passes through a point
// distance away horizontally and height above the launch point
func ProjectileAngle(v0, g, distance, height float64) (float64, error) {

	if v0 <= 0 {
		return 0, ErrMuzzleVelocity
	}

	if distance <= 0 {
		return 0, fmt.Errorf("%w: distance %.3f", ErrOutOfRange, distance)
	}

	if g == 0 {
		return math.Atan2(height, distance), nil
	}

	v2 := v0 * v0
	disc := v2*v2 - g*(g*distance*distance+2*height*v2)

	if disc < 0 {
		return 0, fmt.Errorf("%w: distance %.3f height %.3f at %.2f m/s",
			ErrOutOfRange, distance, height, v0)
	}

	return math.Atan((v2 - math.Sqrt(disc)) / (g * distance)), nil
}

// SolveShootFactor converts the offset of a target from the gun, given as a
// translation vector in metres, into aim angles and flight time.  Offset is
// subtracted from the x and y components to account for the aim point.
func SolveShootFactor(t r3.Vec, p BallisticParams, offset gocv.Point2f,
	mode rmcv.CompensateMode) (rmcv.ShootFactor, error) {

	if p.MuzzleVelocity <= 0 {
		return rmcv.ShootFactor{}, ErrMuzzleVelocity
	}

	x := t.X - float64(offset.X)
	y := t.Y - float64(offset.Y)
	distance := t.Z

	sf := rmcv.ShootFactor{
		YawAngle: float32(degrees(math.Atan2(x, t.Z))),
	}

	switch mode {
	case rmcv.CompensateNone:
		sf.PitchAngle = float32(degrees(math.Atan2(y, t.Z)))
		sf.EstimateAirTime = distance / p.MuzzleVelocity

	case rmcv.CompensateClassic:
		targetAngle, err := ProjectileAngle(p.MuzzleVelocity, p.Gravity,
			distance, p.DeltaHeight)

		if err != nil {
			return rmcv.ShootFactor{}, err
		}

		normalAngle := degrees(math.Atan2(p.DeltaHeight, distance))
		centerAngle := -degrees(math.Atan2(y, t.Z))

		sf.PitchAngle = float32((centerAngle - normalAngle) + degrees(targetAngle))
		sf.EstimateAirTime = distance / math.Abs(p.MuzzleVelocity*math.Cos(targetAngle))

	case rmcv.CompensateNI:
		return rmcv.ShootFactor{}, fmt.Errorf("%w: %s", ErrNotImplemented, mode)

	default:
		return rmcv.ShootFactor{}, fmt.Errorf("unknown compensate mode %s", mode)
	}

	return sf, nil
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
