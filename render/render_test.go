package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-rmcv"
	"gocv.io/x/gocv"
)

func TestCampColor(t *testing.T) {
	assert.Equal(t, Red, CampColor(rmcv.CampRed))
	assert.Equal(t, Blue, CampColor(rmcv.CampBlue))
	assert.Equal(t, Gray, CampColor(rmcv.CampUnknown))
}

func TestRankColor(t *testing.T) {
	assert.Equal(t, rankColors[0], RankColor(0))
	assert.Equal(t, rankColors[len(rankColors)-1], RankColor(len(rankColors)+3))
}

func TestLabelRect(t *testing.T) {
	font := DefaultFont()
	pos := image.Pt(10, 50)

	r := font.LabelRect("armour", pos)

	assert.Equal(t, pos.X, r.Min.X)
	assert.Equal(t, pos.Y, r.Max.Y)
	assert.Greater(t, r.Dx(), font.Pad*2)
	assert.Greater(t, r.Dy(), font.Pad+font.BottomPad)
}

func TestArmoursDraws(t *testing.T) {
	img := gocv.NewMatWithSize(200, 200, gocv.MatTypeCV8UC3)
	defer img.Close()
	img.SetTo(gocv.NewScalar(0, 0, 0, 0))

	left := rmcv.NewLightBar(rmcv.NewRotatedRect(gocv.Point2f{X: 80, Y: 100}, 10, 40, 0), rmcv.CampRed)
	right := rmcv.NewLightBar(rmcv.NewRotatedRect(gocv.Point2f{X: 130, Y: 100}, 10, 40, 0), rmcv.CampRed)

	armour, err := rmcv.NewArmour([]rmcv.LightBar{left, right}, rmcv.ArmourSmall, 0)
	require.NoError(t, err)

	LightBars(&img, []rmcv.LightBar{left, right}, 1)
	Armours(&img, []rmcv.Armour{armour}, DefaultFont(), 2)
	ShootFactor(&img, rmcv.ShootFactor{PitchAngle: 1.5, YawAngle: -2}, DefaultFont())

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	assert.Greater(t, gocv.CountNonZero(gray), 0)

	// selected target center is filled
	center := rmcv.RoundPoint(armour.Center())
	px := img.GetVecbAt(center.Y, center.X)
	assert.NotEqual(t, []uint8{0, 0, 0}, []uint8(px))
}
