package objdetect

import (
	"math"
	"sort"

	"github.com/swdee/go-rmcv"
	"gocv.io/x/gocv"
)

// ArmourParams defines the geometric thresholds used to pair light bars into
// armour plates
type ArmourParams struct {
	// MaxAngleDif is the largest allowed difference in degrees between the
	// angles of the two light bars
	MaxAngleDif float32
	// ErrAngle is the largest allowed deviation in degrees of each light bar
	// from perpendicular to the line joining their centers
	ErrAngle float32
	// MinBoxRatio and MaxBoxRatio bound the perspective compensated ratio of
	// light bar height to light bar separation
	MinBoxRatio float32
	MaxBoxRatio float32
	// LenRatio is the minimum ratio of the shorter to the longer light bar
	LenRatio float32
	// Filter drops a later pair sharing a left light bar with the previous
	// match when it is not taller, otherwise both are kept
	Filter bool
}

// DefaultArmourParams returns an instance of ArmourParams configured with
// default values
// - Max Angle Difference: 10
// - Error Angle: 20
// - Box Ratio: 0.1 to 0.6
// - Length Ratio: 0.6
// - Filter: true
func DefaultArmourParams() ArmourParams {
	return ArmourParams{
		MaxAngleDif: 10,
		ErrAngle:    20,
		MinBoxRatio: 0.1,
		MaxBoxRatio: 0.6,
		LenRatio:    0.6,
		Filter:      true,
	}
}

// LightBarInterference returns true if any other light bar's center lies
// strictly between the two given light bars, both horizontally between their
// centers and vertically between the top and bottom of the pair.  A bar in
// between means the pair most likely spans two different plates.
func LightBarInterference(lightBars []rmcv.LightBar, leftIndex, rightIndex int) bool {

	left := lightBars[leftIndex]
	right := lightBars[rightIndex]

	minX := min(left.Center.X, right.Center.X)
	maxX := max(left.Center.X, right.Center.X)
	minY := min(left.Vertices[1].Y, right.Vertices[1].Y)
	maxY := max(left.Vertices[0].Y, right.Vertices[0].Y)

	for k, lb := range lightBars {
		if k == leftIndex || k == rightIndex {
			continue
		}

		if lb.Center.X > minX && lb.Center.X < maxX &&
			lb.Center.Y > minY && lb.Center.Y < maxY {
			return true
		}
	}

	return false
}

// FindArmourInFrame pairs light bars into armours ranked by distance to the
// center of a frame of the given size
func FindArmourInFrame(lightBars []rmcv.LightBar, p ArmourParams,
	ownCamp rmcv.CampType, frameWidth, frameHeight int) []rmcv.Armour {

	center := gocv.Point2f{
		X: float32(frameWidth) / 2,
		Y: float32(frameHeight) / 2,
	}

	return FindArmour(lightBars, p, ownCamp, center)
}

// FindArmour pairs opposing camp light bars into armour hypotheses and
// returns them sorted by ascending distance to the attention point, so the
// first armour is the highest priority target.  The input slice is not
// modified.
//
// Pairs sharing a left light bar are deduplicated greedily by looking back
// only at the immediately preceding match, keeping the pair whose shorter
// light bar is taller.  This is a local heuristic, not an optimal assignment.
func FindArmour(lightBars []rmcv.LightBar, p ArmourParams,
	ownCamp rmcv.CampType, attention gocv.Point2f) []rmcv.Armour {

	armours := make([]rmcv.Armour, 0)

	if len(lightBars) < 2 {
		return armours
	}

	// the dedup below depends on light bars being ordered left to right
	bars := make([]rmcv.LightBar, len(lightBars))
	copy(bars, lightBars)

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Center.X < bars[j].Center.X
	})

	heightHistory := float32(-1)
	lastI := -1

	for i := 0; i < len(bars)-1; i++ {
		if bars[i].Camp == ownCamp {
			continue
		}

		for j := i + 1; j < len(bars); j++ {
			if bars[j].Camp == ownCamp {
				continue
			}

			if !matchLightBars(bars, i, j, p) {
				continue
			}

			heightI := bars[i].Size.Height
			heightJ := bars[j].Size.Height
			minHeight := min(heightI, heightJ)

			// chained on the previous match's left bar, not its right bar,
			// so only pairs competing for the same left bar are compared
			if lastI == i {
				if heightHistory < minHeight {
					armours = armours[:len(armours)-1]
				} else if p.Filter {
					continue
				}
			}

			heightHistory = minHeight
			lastI = i

			center := rmcv.Midpoint(bars[i].Center, bars[j].Center)

			armour, err := rmcv.NewArmour([]rmcv.LightBar{bars[i], bars[j]},
				rmcv.ArmourSmall, rmcv.PointDistance(center, attention))

			if err != nil {
				// impossible to reach here, always called with a pair
				continue
			}

			armours = append(armours, armour)
		}
	}

	if len(armours) > 1 {
		sort.SliceStable(armours, func(i, j int) bool {
			return armours[i].Rank < armours[j].Rank
		})
	}

	return armours
}

// matchLightBars applies the geometric pairing tests to light bars i and j
func matchLightBars(bars []rmcv.LightBar, i, j int, p ArmourParams) bool {

	if LightBarInterference(bars, i, j) {
		return false
	}

	barI := bars[i]
	barJ := bars[j]

	// poor angle between the two light bars
	if abs32(barI.Angle-barJ.Angle) > p.MaxAngleDif {
		return false
	}

	// each light bar should be perpendicular to the line joining them
	dy := float64(abs32(barI.Center.Y - barJ.Center.Y))
	dx := float64(abs32(barI.Center.X - barJ.Center.X))
	angle := float32(math.Atan2(dy, dx) * 180 / math.Pi)

	if perpendicularError(barI.Angle, angle) > p.ErrAngle ||
		perpendicularError(barJ.Angle, angle) > p.ErrAngle {
		return false
	}

	heightI := barI.Size.Height
	heightJ := barJ.Size.Height
	minHeight := min(heightI, heightJ)
	maxHeight := max(heightI, heightJ)

	if minHeight/maxHeight < p.LenRatio {
		return false
	}

	// compensate the separation for light bars at different depths
	compensate := float32(math.Sin(math.Atan2(float64(minHeight), float64(maxHeight))))
	distance := rmcv.PointDistance(barI.Center, barJ.Center)
	boxRatio := maxHeight / (distance / compensate)

	if boxRatio > p.MaxBoxRatio || boxRatio < p.MinBoxRatio {
		return false
	}

	// plates are near horizontal pairs
	if abs32(barI.Center.Y-barJ.Center.Y) > (heightI+heightJ)/2 {
		return false
	}

	return true
}

// perpendicularError returns how far in degrees a light bar at barAngle is
// from perpendicular to a line at lineAngle
func perpendicularError(barAngle, lineAngle float32) float32 {
	if barAngle > 90 {
		return abs32(abs32(barAngle-lineAngle) - 90)
	}
	return abs32(abs32(180-barAngle-lineAngle) - 90)
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
