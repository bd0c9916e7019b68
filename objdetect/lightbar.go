package objdetect

import (
	"image"
	"math"

	"github.com/swdee/go-rmcv"
	"gocv.io/x/gocv"
)

// minContourPoints is the fewest contour points accepted as a light bar, the
// ellipse fit needs at least five
const minContourPoints = 6

// LightBarParams defines the shape filter thresholds used to accept a contour
// as a light bar
type LightBarParams struct {
	// MinRatio and MaxRatio bound the long side / short side aspect ratio of
	// the fitted rectangle
	MinRatio float32
	MaxRatio float32
	// TiltAngle is the maximum deviation in degrees from vertical
	TiltAngle float32
	// MinArea and MaxArea bound the contour area in pixels
	MinArea float32
	MaxArea float32
	// UseFitEllipse selects an ellipse fit instead of a minimum area
	// rectangle for the light bar geometry
	UseFitEllipse bool
}

// DefaultLightBarParams returns an instance of LightBarParams configured
// with default values
// - Aspect Ratio: 1.5 to 20
// - Tilt Angle: 40
// - Area: 15 to 20000
// - Fit Ellipse: true
func DefaultLightBarParams() LightBarParams {
	return LightBarParams{
		MinRatio:      1.5,
		MaxRatio:      20,
		TiltAngle:     40,
		MinArea:       15,
		MaxArea:       20000,
		UseFitEllipse: true,
	}
}

// JudgeLightBar returns true if the contour passes the light bar shape filter
func JudgeLightBar(contour []image.Point, p LightBarParams) bool {
	_, ok := judgeLightBar(contour, p)
	return ok
}

// judgeLightBar applies the shape filter and returns the fitted rectangle of
// an accepted contour
func judgeLightBar(contour []image.Point, p LightBarParams) (rmcv.RotatedRect, bool) {

	if len(contour) < minContourPoints {
		return rmcv.RotatedRect{}, false
	}

	pv := gocv.NewPointVectorFromPoints(contour)
	defer pv.Close()

	area := float32(gocv.ContourArea(pv))

	if area < p.MinArea || area > p.MaxArea {
		return rmcv.RotatedRect{}, false
	}

	// gocv only offers an integer ellipse fit, the rectangle fit keeps
	// sub pixel precision
	ellipse := rmcv.RotatedRectFromGoCV(gocv.FitEllipse(pv))
	box := ellipse

	if !p.UseFitEllipse {
		box = rmcv.RotatedRectFrom2f(gocv.MinAreaRect2f(pv))
	}

	if !judgeShape(box.Width, box.Height, ellipse.Angle, p) {
		return rmcv.RotatedRect{}, false
	}

	return box, true
}

// judgeShape checks the aspect ratio of the fitted box and the tilt of the
// fitted ellipse
func judgeShape(width, height float32, ellipseAngle float64, p LightBarParams) bool {

	if width <= 0 || height <= 0 {
		return false
	}

	ratio := max(width, height) / min(width, height)

	if ratio > p.MaxRatio || ratio < p.MinRatio {
		return false
	}

	if math.Abs(normalizeEllipseAngle(ellipseAngle)-90) > float64(p.TiltAngle) {
		return false
	}

	return true
}

// normalizeEllipseAngle maps an OpenCV ellipse angle, where an upright
// ellipse is 0 or 180, onto the convention where perpendicular to the frame
// is 90 with left leaning below and right leaning above
func normalizeEllipseAngle(angle float64) float64 {
	if angle > 90 {
		return angle - 90
	}
	return angle + 90
}

// FindLightBars returns a light bar for every contour that passes the shape
// filter, all tagged with the given camp.  Fewer than two contours can not
// form an armour so an empty result is returned.
func FindLightBars(contours [][]image.Point, p LightBarParams, camp rmcv.CampType) []rmcv.LightBar {

	lightBars := make([]rmcv.LightBar, 0)

	if len(contours) < 2 {
		return lightBars
	}

	for _, contour := range contours {
		box, ok := judgeLightBar(contour, p)

		if !ok {
			continue
		}

		lightBars = append(lightBars, rmcv.NewLightBar(box, camp))
	}

	return lightBars
}

// FindLightBarsByColor returns a light bar for every contour that passes the
// shape filter, classifying the camp of each by the mean colour of the BGR
// frame inside the contour's bounding box
func FindLightBarsByColor(contours [][]image.Point, p LightBarParams, frame gocv.Mat) []rmcv.LightBar {

	lightBars := make([]rmcv.LightBar, 0)

	if len(contours) < 2 {
		return lightBars
	}

	bounds := image.Rect(0, 0, frame.Cols(), frame.Rows())

	for _, contour := range contours {
		box, ok := judgeLightBar(contour, p)

		if !ok {
			continue
		}

		lightBars = append(lightBars, rmcv.NewLightBar(box,
			regionCamp(frame, rmcv.BoundingRect(contour).Intersect(bounds))))
	}

	return lightBars
}

// FindLightBarsInBinary extracts the external contours of a binary mask and
// passes them to FindLightBarsByColor
func FindLightBarsInBinary(binary gocv.Mat, p LightBarParams, frame gocv.Mat) []rmcv.LightBar {

	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer contours.Close()

	return FindLightBarsByColor(contours.ToPoints(), p, frame)
}

// regionCamp classifies a region of a BGR frame as red when its mean red
// channel is greater than its mean blue channel, otherwise blue
func regionCamp(frame gocv.Mat, rect image.Rectangle) rmcv.CampType {

	if rect.Empty() {
		return rmcv.CampUnknown
	}

	region := frame.Region(rect)
	defer region.Close()

	mean := region.Mean()

	// BGR channel order
	if mean.Val3 > mean.Val1 {
		return rmcv.CampRed
	}

	return rmcv.CampBlue
}
