package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Font defines the parameters for rendering overlay labels using GoCV's
// Hershey fonts
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// Padding between the text and its background box
	Pad       int
	BottomPad int
}

// DefaultFont returns default font settings, black text suits the bright
// rank colors used as label backgrounds
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     Black,
		Thickness: 1,
		LineType:  gocv.LineAA,
		Pad:       4,
		BottomPad: 6,
	}
}

// LabelRect returns the background box of text drawn with its bottom left
// corner at pos
func (f Font) LabelRect(text string, pos image.Point) image.Rectangle {
	size := gocv.GetTextSize(text, f.Face, f.Scale, f.Thickness)

	return image.Rect(pos.X, pos.Y-size.Y-f.Pad-f.BottomPad,
		pos.X+size.X+f.Pad*2, pos.Y)
}

// Label draws text on a filled bg box whose bottom left corner is at pos
func (f Font) Label(img *gocv.Mat, text string, pos image.Point, bg color.RGBA) {
	gocv.Rectangle(img, f.LabelRect(text, pos), bg, -1)

	gocv.PutTextWithParams(img, text, image.Pt(pos.X+f.Pad, pos.Y-f.BottomPad),
		f.Face, f.Scale, f.Color, f.Thickness, f.LineType, false)
}
