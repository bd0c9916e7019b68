package render

import (
	"image/color"

	"github.com/swdee/go-rmcv"
)

var (
	// rankColors are used to paint armours by priority, index 0 is the
	// selected target
	rankColors = []color.RGBA{
		{R: 72, G: 249, B: 10, A: 255},  // #48F90A
		{R: 255, G: 178, B: 29, A: 255}, // #FFB21D
		{R: 0, G: 194, B: 255, A: 255},  // #00C2FF
		{R: 203, G: 56, B: 255, A: 255}, // #CB38FF
	}

	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.RGBA{R: 255, G: 56, B: 56, A: 255}
	Blue  = color.RGBA{R: 0, G: 64, B: 255, A: 255}
	Gray  = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)

// CampColor returns the color used to draw items of a camp
func CampColor(camp rmcv.CampType) color.RGBA {
	switch camp {
	case rmcv.CampRed:
		return Red
	case rmcv.CampBlue:
		return Blue
	default:
		return Gray
	}
}

// RankColor returns the color used to draw the armour at index i of a
// ranked result
func RankColor(i int) color.RGBA {
	if i >= len(rankColors) {
		return rankColors[len(rankColors)-1]
	}
	return rankColors[i]
}
