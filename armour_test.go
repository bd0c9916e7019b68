package rmcv

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func uprightBar(x, y, width, height float32, camp CampType) LightBar {
	return NewLightBar(NewRotatedRect(pt(x, y), width, height, 0), camp)
}

func TestNewArmourRequiresTwoLightBars(t *testing.T) {
	bar := uprightBar(100, 100, 10, 40, CampRed)

	for _, bars := range [][]LightBar{nil, {bar}, {bar, bar, bar}} {
		_, err := NewArmour(bars, ArmourSmall, 0)
		assert.ErrorIs(t, err, ErrArmourLightBars, "%d light bars", len(bars))
	}
}

func TestNewArmourSmall(t *testing.T) {
	left := uprightBar(100, 100, 10, 40, CampBlue)
	right := uprightBar(150, 100, 10, 40, CampBlue)

	// light bars are sorted left to right regardless of input order
	a, err := NewArmour([]LightBar{right, left}, ArmourSmall, 12.5)
	require.NoError(t, err)

	assert.Equal(t, left, a.LightBars[0])
	assert.Equal(t, right, a.LightBars[1])
	assert.Equal(t, CampBlue, a.CampType)
	assert.Equal(t, float32(12.5), a.Rank)
	assert.Equal(t, pt(125, 100), a.Center())

	expected := [4]gocv.Point2f{
		pt(95, 120),  // bottom-left
		pt(95, 80),   // top-left
		pt(155, 80),  // top-right
		pt(155, 120), // bottom-right
	}

	if diff := cmp.Diff(expected, a.Vertices, approx); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}

	// edges of 40 are extended by round((40/0.44-40)/2) = 25
	assert.Equal(t, [4]image.Point{{95, 145}, {95, 55}, {155, 55}, {155, 145}}, a.Icon)
	assert.Equal(t, image.Rect(95, 55, 156, 146), a.IconBox)
}

func TestNewArmourBig(t *testing.T) {
	left := uprightBar(100, 100, 10, 40, CampRed)
	right := uprightBar(150, 100, 10, 40, CampRed)

	a, err := NewArmour([]LightBar{left, right}, ArmourBig, 0)
	require.NoError(t, err)

	assert.Equal(t, ArmourBig, a.ArmourType)

	// top and bottom edges of 60 move by round((60/1.6785-60)/2) = -12
	assert.Equal(t, [4]image.Point{{107, 145}, {107, 55}, {143, 55}, {143, 145}}, a.Icon)
	assert.Equal(t, image.Rect(107, 55, 144, 146), a.IconBox)
}

func TestNewArmourRectifiesShortEdges(t *testing.T) {
	left := uprightBar(100, 100, 4, 10, CampRed)
	right := uprightBar(200, 100, 4, 10, CampRed)

	a, err := NewArmour([]LightBar{left, right}, ArmourSmall, 0)
	require.NoError(t, err)

	// edge midpoints are 104 apart so the plate is at least 104*5.5/12.5 high
	minHeight := float32(104 * 5.5 / 12.5)

	assert.InDelta(t, minHeight, PointDistance(a.Vertices[0], a.Vertices[1]), 1e-3)
	assert.InDelta(t, minHeight, PointDistance(a.Vertices[3], a.Vertices[2]), 1e-3)

	// stretched about the edge midpoint
	assert.InDelta(t, 100, Midpoint(a.Vertices[0], a.Vertices[1]).Y, 1e-3)

	// the icon is derived from the observed, unrectified edges
	assert.Equal(t, 10+2*6, a.Icon[0].Y-a.Icon[1].Y)

	big, err := NewArmour([]LightBar{left, right}, ArmourBig, 0)
	require.NoError(t, err)

	assert.InDelta(t, float32(104*5.5/21.5), PointDistance(big.Vertices[0], big.Vertices[1]), 1e-3)
}
