package rmcv

import (
	"math"

	"gocv.io/x/gocv"
)

// Size is the dimension of a light bar where Height is always the long axis
type Size struct {
	Width  float32
	Height float32
}

// LightBar is an elongated bright region that is a candidate edge marker of
// an armour plate
type LightBar struct {
	// Center of the fitted rectangle
	Center gocv.Point2f
	// Size of the fitted rectangle, Height >= Width
	Size Size
	// Angle of the long axis in degrees within [0, 180], a vertical bar is
	// 90, a bar with its top leaning right is below 90
	Angle float32
	// Vertices are the rectangle corners ordered bottom-right, top-right,
	// top-left, bottom-left
	Vertices [4]gocv.Point2f
	// Camp is the team colour of the light bar
	Camp CampType
}

// NewLightBar derives a LightBar from a fitted rotated rectangle
func NewLightBar(box RotatedRect, camp CampType) LightBar {

	vertices := rectifyTall(box.Points)

	top := Midpoint(vertices[1], vertices[2])
	bottom := Midpoint(vertices[0], vertices[3])

	// image y grows downward so flip it to measure angle from the x axis
	angle := math.Atan2(float64(bottom.Y-top.Y), float64(top.X-bottom.X)) * 180 / math.Pi

	return LightBar{
		Center: box.Center,
		Size: Size{
			Width:  min(box.Width, box.Height),
			Height: max(box.Width, box.Height),
		},
		Angle:    float32(angle),
		Vertices: vertices,
		Camp:     camp,
	}
}
