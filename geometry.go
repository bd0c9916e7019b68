package rmcv

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// PointDistance returns the euclidean distance between two points
func PointDistance(a, b gocv.Point2f) float32 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// Midpoint returns the point half way between a and b
func Midpoint(a, b gocv.Point2f) gocv.Point2f {
	return gocv.Point2f{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// ExtendSegment pushes both ends of the segment p1->p2 outward along its own
// direction by offset.  A negative offset shortens the segment.  A zero length
// segment is returned unchanged.
func ExtendSegment(p1, p2 gocv.Point2f, offset float32) (gocv.Point2f, gocv.Point2f) {

	length := PointDistance(p1, p2)

	if length == 0 {
		return p1, p2
	}

	ux := (p2.X - p1.X) / length
	uy := (p2.Y - p1.Y) / length

	out1 := gocv.Point2f{X: p1.X - ux*offset, Y: p1.Y - uy*offset}
	out2 := gocv.Point2f{X: p2.X + ux*offset, Y: p2.Y + uy*offset}

	return out1, out2
}

// RoundPoint converts a float point to the nearest integer pixel
func RoundPoint(p gocv.Point2f) image.Point {
	return image.Pt(int(math.Round(float64(p.X))), int(math.Round(float64(p.Y))))
}

// BoundingRect returns the smallest upright rectangle containing all points.
// Like OpenCV the rectangle is inclusive of the right and bottom most pixels.
func BoundingRect(points []image.Point) image.Rectangle {

	if len(points) == 0 {
		return image.Rectangle{}
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY

	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}

	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// RotatedRect is a rectangle rotated about its center by Angle degrees using
// float precision, gocv.RotatedRect only carries integer dimensions
type RotatedRect struct {
	Center gocv.Point2f
	Width  float32
	Height float32
	// Angle is the clockwise rotation in degrees as reported by OpenCV
	Angle float64
	// Points are the four corners in OpenCV RotatedRect::points() order
	Points [4]gocv.Point2f
}

// NewRotatedRect creates a RotatedRect and calculates its corner points
func NewRotatedRect(center gocv.Point2f, width, height float32, angle float64) RotatedRect {

	rad := angle * math.Pi / 180
	a := float32(math.Sin(rad) * 0.5)
	b := float32(math.Cos(rad) * 0.5)

	r := RotatedRect{
		Center: center,
		Width:  width,
		Height: height,
		Angle:  angle,
	}

	r.Points[0] = gocv.Point2f{
		X: center.X - a*height - b*width,
		Y: center.Y + b*height - a*width,
	}
	r.Points[1] = gocv.Point2f{
		X: center.X + a*height - b*width,
		Y: center.Y - b*height - a*width,
	}
	r.Points[2] = gocv.Point2f{X: 2*center.X - r.Points[0].X, Y: 2*center.Y - r.Points[0].Y}
	r.Points[3] = gocv.Point2f{X: 2*center.X - r.Points[1].X, Y: 2*center.Y - r.Points[1].Y}

	return r
}

// RotatedRectFromGoCV converts the integer gocv.RotatedRect returned by
// gocv.FitEllipse, gocv truncates its center, size and corners to whole
// pixels
func RotatedRectFromGoCV(box gocv.RotatedRect) RotatedRect {

	r := RotatedRect{
		Center: gocv.Point2f{X: float32(box.Center.X), Y: float32(box.Center.Y)},
		Width:  float32(box.Width),
		Height: float32(box.Height),
		Angle:  box.Angle,
	}

	if len(box.Points) != 4 {
		return NewRotatedRect(r.Center, r.Width, r.Height, r.Angle)
	}

	for i, pt := range box.Points {
		r.Points[i] = gocv.Point2f{X: float32(pt.X), Y: float32(pt.Y)}
	}

	return r
}

// RotatedRectFrom2f converts the float gocv.RotatedRect2f returned by
// gocv.MinAreaRect2f
func RotatedRectFrom2f(box gocv.RotatedRect2f) RotatedRect {

	if len(box.Points) != 4 {
		return NewRotatedRect(box.Center, box.Width, box.Height, box.Angle)
	}

	r := RotatedRect{
		Center: box.Center,
		Width:  box.Width,
		Height: box.Height,
		Angle:  box.Angle,
	}

	copy(r.Points[:], box.Points)

	return r
}

// AspectRatio returns the long side divided by the short side
func (r RotatedRect) AspectRatio() float32 {
	return max(r.Width, r.Height) / min(r.Width, r.Height)
}

// rectifyTall orders the corners of a rectangle as bottom-right, top-right,
// top-left, bottom-left where top and bottom are the two short edges
func rectifyTall(pts [4]gocv.Point2f) [4]gocv.Point2f {

	// pick the pair of short edges
	var e1, e2 [2]gocv.Point2f

	if PointDistance(pts[0], pts[1]) < PointDistance(pts[1], pts[2]) {
		e1 = [2]gocv.Point2f{pts[0], pts[1]}
		e2 = [2]gocv.Point2f{pts[2], pts[3]}
	} else {
		e1 = [2]gocv.Point2f{pts[1], pts[2]}
		e2 = [2]gocv.Point2f{pts[3], pts[0]}
	}

	top, bottom := e1, e2

	if Midpoint(e1[0], e1[1]).Y > Midpoint(e2[0], e2[1]).Y {
		top, bottom = e2, e1
	}

	if top[0].X < top[1].X {
		top[0], top[1] = top[1], top[0]
	}

	if bottom[0].X < bottom[1].X {
		bottom[0], bottom[1] = bottom[1], bottom[0]
	}

	return [4]gocv.Point2f{bottom[0], top[0], top[1], bottom[1]}
}
