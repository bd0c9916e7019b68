package rmcv

import (
	"errors"
	"image"
	"math"
	"sort"

	"gocv.io/x/gocv"
)

const (
	// IconWidthRatio is the width to height ratio of the light bar region of
	// an armour relative to the full plate icon height
	IconWidthRatio = 0.44
	// BigIconRatio adjusts the icon of a big armour along its top and bottom
	// edges
	BigIconRatio = 1.6785
	// SmallArmourRatio is the physical width to height ratio of a small
	// armour plate measured between light bars, 12.5cm x 5.5cm
	SmallArmourRatio = 12.5 / 5.5
	// BigArmourRatio is the physical width to height ratio of a big armour
	// plate measured between light bars, 21.5cm x 5.5cm
	BigArmourRatio = 21.5 / 5.5
)

// ErrArmourLightBars is returned when an Armour is created from a number of
// light bars other than two
var ErrArmourLightBars = errors.New("armour must be initialized with 2 light bars")

// Armour is a pair of light bars hypothesised to bound one armour plate
type Armour struct {
	// LightBars are the two light bars sorted left to right
	LightBars [2]LightBar
	// ArmourType is the size class given by the caller
	ArmourType ArmourType
	// CampType is copied from the light bars
	CampType CampType
	// Rank is the distance to the attention point, lower is higher priority
	Rank float32
	// Vertices are the outer light bar corners ordered bottom-left,
	// top-left, top-right, bottom-right after perspective rectification
	Vertices [4]gocv.Point2f
	// Icon is the crop quadrilateral extrapolated around the plate
	Icon [4]image.Point
	// IconBox is the upright bounding rectangle of Icon
	IconBox image.Rectangle
}

// NewArmour creates an Armour from exactly two light bars
func NewArmour(lightBars []LightBar, armourType ArmourType, rank float32) (Armour, error) {

	if len(lightBars) != 2 {
		return Armour{}, ErrArmourLightBars
	}

	a := Armour{
		ArmourType: armourType,
		Rank:       rank,
	}

	copy(a.LightBars[:], lightBars)

	// sort light bars left to right
	sort.SliceStable(a.LightBars[:], func(i, j int) bool {
		return a.LightBars[i].Center.X < a.LightBars[j].Center.X
	})

	a.CampType = a.LightBars[0].Camp

	left := a.LightBars[0].Vertices
	right := a.LightBars[1].Vertices

	a.Vertices = [4]gocv.Point2f{left[3], left[2], right[1], right[0]}

	a.calcIcon()

	ratio := float32(SmallArmourRatio)

	if armourType == ArmourBig {
		ratio = BigArmourRatio
	}

	a.Vertices = rectifyPerspective(a.Vertices, ratio)

	return a, nil
}

// Center returns the midpoint between the two light bar centers
func (a *Armour) Center() gocv.Point2f {
	return Midpoint(a.LightBars[0].Center, a.LightBars[1].Center)
}

// calcIcon extrapolates the icon quadrilateral from the unrectified vertices
func (a *Armour) calcIcon() {

	v := a.Vertices
	var icon [4]gocv.Point2f

	distanceL := PointDistance(v[0], v[1])
	distanceR := PointDistance(v[2], v[3])

	icon[0], icon[1] = ExtendSegment(v[0], v[1], iconOffset(distanceL, IconWidthRatio))
	icon[3], icon[2] = ExtendSegment(v[3], v[2], iconOffset(distanceR, IconWidthRatio))

	if a.ArmourType == ArmourBig {
		distanceU := PointDistance(v[1], v[2])
		distanceD := PointDistance(v[0], v[3])

		icon[1], icon[2] = ExtendSegment(icon[1], icon[2], iconOffset(distanceU, BigIconRatio))
		icon[0], icon[3] = ExtendSegment(icon[0], icon[3], iconOffset(distanceD, BigIconRatio))
	}

	for i, p := range icon {
		a.Icon[i] = RoundPoint(p)
	}

	a.IconBox = BoundingRect(a.Icon[:])
}

// iconOffset returns the whole pixel amount each end of an edge of the given
// length must move so the edge becomes length/ratio long
func iconOffset(length float32, ratio float32) float32 {
	return float32(math.Round(float64((length/ratio - length) / 2)))
}

// rectifyPerspective corrects the height of the plate's vertical edges.  The
// observed width between the edge midpoints can only shrink under perspective
// so the true edge height is at least width/ratio.  Edges shorter than that,
// usually from partially occluded or dim light bars, are stretched about their
// midpoint to that height.
func rectifyPerspective(v [4]gocv.Point2f, ratio float32) [4]gocv.Point2f {

	midL := Midpoint(v[0], v[1])
	midR := Midpoint(v[3], v[2])

	minHeight := PointDistance(midL, midR) / ratio

	out := v
	out[0], out[1] = stretchEdge(v[0], v[1], minHeight)
	out[3], out[2] = stretchEdge(v[3], v[2], minHeight)

	return out
}

// stretchEdge grows the segment p1->p2 about its midpoint to minLength, longer
// segments are returned unchanged
func stretchEdge(p1, p2 gocv.Point2f, minLength float32) (gocv.Point2f, gocv.Point2f) {

	length := PointDistance(p1, p2)

	if length >= minLength || length == 0 {
		return p1, p2
	}

	return ExtendSegment(p1, p2, (minLength-length)/2)
}
