package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/swdee/go-rmcv"
	"gocv.io/x/gocv"
)

// LightBars outlines each light bar in the color of its camp
func LightBars(img *gocv.Mat, lightBars []rmcv.LightBar, lineThickness int) {
	for _, lb := range lightBars {
		quad(img, lb.Vertices, CampColor(lb.Camp), lineThickness)
	}
}

// Armours draws the vertices and icon box of each armour with a label
// showing its rank.  Armours are expected in ranked order so the first is
// drawn as the selected target.
func Armours(img *gocv.Mat, armours []rmcv.Armour, font Font, lineThickness int) {

	for i, armour := range armours {
		useClr := RankColor(i)

		quad(img, armour.Vertices, useClr, lineThickness)
		gocv.Rectangle(img, armour.IconBox, useClr, 1)

		if i == 0 {
			center := rmcv.RoundPoint(armour.Center())
			gocv.Circle(img, center, 3, useClr, -1)
		}

		text := fmt.Sprintf("%s %s %.0f", armour.CampType, armour.ArmourType, armour.Rank)
		font.Label(img, text, armour.IconBox.Min, useClr)
	}
}

// ShootFactor writes the aim solution along the top of the image
func ShootFactor(img *gocv.Mat, sf rmcv.ShootFactor, font Font) {

	text := fmt.Sprintf("Pitch: %.2f, Yaw: %.2f, Air Time: %.3fs",
		sf.PitchAngle, sf.YawAngle, sf.EstimateAirTime)

	font.Label(img, text, image.Pt(0, 20), White)
}

// quad draws a closed four sided polygon
func quad(img *gocv.Mat, pts [4]gocv.Point2f, clr color.RGBA, thickness int) {
	for i := 0; i < 4; i++ {
		gocv.Line(img, rmcv.RoundPoint(pts[i]), rmcv.RoundPoint(pts[(i+1)%4]),
			clr, thickness)
	}
}
