package objdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-rmcv"
	"gocv.io/x/gocv"
)

// bar returns an upright light bar centered at x,y
func bar(x, y, height float32, camp rmcv.CampType) rmcv.LightBar {
	return rmcv.NewLightBar(rmcv.NewRotatedRect(gocv.Point2f{X: x, Y: y}, 4, height, 0), camp)
}

// testArmourParams are loose enough to accept any two level light bars of
// equal height up to a few bar heights apart
func testArmourParams() ArmourParams {
	return ArmourParams{
		MaxAngleDif: 10,
		ErrAngle:    20,
		MinBoxRatio: 0.3,
		MaxBoxRatio: 1.0,
		LenRatio:    0.6,
		Filter:      true,
	}
}

// pairCenters returns the x coordinates of the light bars of each armour
func pairCenters(armours []rmcv.Armour) [][2]float32 {
	out := make([][2]float32, len(armours))
	for i, a := range armours {
		out[i] = [2]float32{a.LightBars[0].Center.X, a.LightBars[1].Center.X}
	}
	return out
}

func TestLightBarInterference(t *testing.T) {
	bars := []rmcv.LightBar{
		bar(100, 100, 40, rmcv.CampRed),
		bar(150, 100, 40, rmcv.CampRed),
		bar(200, 100, 40, rmcv.CampRed),
	}

	assert.True(t, LightBarInterference(bars, 0, 2))
	assert.True(t, LightBarInterference(bars, 2, 0))
	assert.False(t, LightBarInterference(bars, 0, 1))
	assert.False(t, LightBarInterference(bars, 1, 2))

	// a bar between horizontally but outside the vertical span does not
	// interfere
	bars[1] = bar(150, 200, 40, rmcv.CampRed)
	assert.False(t, LightBarInterference(bars, 0, 2))
}

func TestFindArmourTooFewLightBars(t *testing.T) {
	attention := gocv.Point2f{X: 320, Y: 240}

	assert.Empty(t, FindArmour(nil, testArmourParams(), rmcv.CampBlue, attention))
	assert.Empty(t, FindArmour([]rmcv.LightBar{bar(100, 100, 40, rmcv.CampRed)},
		testArmourParams(), rmcv.CampBlue, attention))
}

func TestFindArmourSkipsOwnCamp(t *testing.T) {
	bars := []rmcv.LightBar{
		bar(100, 100, 40, rmcv.CampRed),
		bar(150, 100, 40, rmcv.CampRed),
	}

	armours := FindArmour(bars, testArmourParams(), rmcv.CampRed, gocv.Point2f{X: 320, Y: 240})
	assert.Empty(t, armours)
}

func TestFindArmourOpposingCamp(t *testing.T) {
	bars := []rmcv.LightBar{
		bar(150, 100, 40, rmcv.CampRed),
		bar(100, 100, 40, rmcv.CampRed),
	}
	attention := gocv.Point2f{X: 320, Y: 240}

	armours := FindArmour(bars, testArmourParams(), rmcv.CampBlue, attention)
	require.Len(t, armours, 1)

	a := armours[0]
	assert.Equal(t, rmcv.CampRed, a.CampType)
	assert.Equal(t, rmcv.ArmourSmall, a.ArmourType)
	assert.InDelta(t, rmcv.PointDistance(gocv.Point2f{X: 125, Y: 100}, attention), a.Rank, 1e-3)

	// input order is left untouched
	assert.Equal(t, float32(150), bars[0].Center.X)
}

func TestFindArmourRejectsMismatchedPairs(t *testing.T) {
	attention := gocv.Point2f{X: 0, Y: 0}
	p := testArmourParams()

	tests := []struct {
		name  string
		left  rmcv.LightBar
		right rmcv.LightBar
	}{
		{"length ratio", bar(100, 100, 40, rmcv.CampRed), bar(150, 100, 20, rmcv.CampRed)},
		{"too far apart", bar(100, 100, 40, rmcv.CampRed), bar(400, 100, 40, rmcv.CampRed)},
		{"too close", bar(100, 100, 40, rmcv.CampRed), bar(110, 100, 40, rmcv.CampRed)},
		{"not level", bar(100, 100, 40, rmcv.CampRed), bar(150, 125, 40, rmcv.CampRed)},
		{"angle difference", bar(100, 100, 40, rmcv.CampRed),
			rmcv.NewLightBar(rmcv.NewRotatedRect(gocv.Point2f{X: 150, Y: 100}, 4, 40, 15), rmcv.CampRed)},
	}

	for _, tc := range tests {
		armours := FindArmour([]rmcv.LightBar{tc.left, tc.right}, p, rmcv.CampBlue, attention)
		assert.Empty(t, armours, tc.name)
	}
}

func TestFindArmourSortedByRank(t *testing.T) {
	bars := []rmcv.LightBar{
		bar(100, 100, 40, rmcv.CampBlue),
		bar(150, 100, 40, rmcv.CampBlue),
		bar(400, 100, 40, rmcv.CampBlue),
		bar(450, 100, 40, rmcv.CampBlue),
	}

	armours := FindArmour(bars, testArmourParams(), rmcv.CampRed, gocv.Point2f{X: 440, Y: 100})
	require.Len(t, armours, 2)

	assert.Equal(t, [][2]float32{{400, 450}, {100, 150}}, pairCenters(armours))
	assert.InDelta(t, 15, armours[0].Rank, 1e-3)
	assert.InDelta(t, 315, armours[1].Rank, 1e-3)
}

// dedupParams accept the diagonal pairs used by the dedup tests
func dedupParams(filter bool) ArmourParams {
	return ArmourParams{
		MaxAngleDif: 10,
		ErrAngle:    50,
		MinBoxRatio: 0.2,
		MaxBoxRatio: 1.0,
		LenRatio:    0.4,
		Filter:      filter,
	}
}

func TestFindArmourDedupReplacesShorterMatch(t *testing.T) {
	// L-M is accepted first, L-R shares the left bar and its shorter bar is
	// taller so it replaces L-M
	bars := []rmcv.LightBar{
		bar(100, 100, 40, rmcv.CampRed), // L
		bar(130, 130, 20, rmcv.CampRed), // M
		bar(160, 100, 40, rmcv.CampRed), // R
	}

	for _, filter := range []bool{true, false} {
		armours := FindArmour(bars, dedupParams(filter), rmcv.CampBlue, gocv.Point2f{})
		assert.ElementsMatch(t, [][2]float32{{100, 160}, {130, 160}}, pairCenters(armours),
			"filter %v", filter)
	}
}

func TestFindArmourDedupFilter(t *testing.T) {
	// L-M is accepted first, L-R shares the left bar with a shorter bar
	bars := []rmcv.LightBar{
		bar(100, 100, 40, rmcv.CampRed), // L
		bar(130, 130, 40, rmcv.CampRed), // M
		bar(160, 100, 20, rmcv.CampRed), // R
	}

	armours := FindArmour(bars, dedupParams(true), rmcv.CampBlue, gocv.Point2f{})
	assert.ElementsMatch(t, [][2]float32{{100, 130}, {130, 160}}, pairCenters(armours))

	armours = FindArmour(bars, dedupParams(false), rmcv.CampBlue, gocv.Point2f{})
	assert.ElementsMatch(t, [][2]float32{{100, 130}, {100, 160}, {130, 160}}, pairCenters(armours))
}

func TestFindArmourInFrame(t *testing.T) {
	bars := []rmcv.LightBar{
		bar(300, 240, 40, rmcv.CampBlue),
		bar(350, 240, 40, rmcv.CampBlue),
	}

	armours := FindArmourInFrame(bars, testArmourParams(), rmcv.CampRed, 640, 480)
	require.Len(t, armours, 1)
	assert.InDelta(t, 5, armours[0].Rank, 1e-3)
}

func TestPerpendicularError(t *testing.T) {
	assert.InDelta(t, 0, perpendicularError(90, 0), 1e-6)
	assert.InDelta(t, 10, perpendicularError(80, 0), 1e-6)
	assert.InDelta(t, 10, perpendicularError(100, 0), 1e-6)
	assert.InDelta(t, 45, perpendicularError(90, 45), 1e-6)
}

func TestFindArmourRejectsInterferedPair(t *testing.T) {
	attention := gocv.Point2f{X: 320, Y: 240}
	outer := []rmcv.LightBar{
		bar(100, 100, 40, rmcv.CampRed),
		bar(150, 100, 40, rmcv.CampRed),
	}

	// the outer pair is a valid armour on its own
	require.Len(t, FindArmour(outer, testArmourParams(), rmcv.CampBlue, attention), 1)

	// an own camp bar between them can not pair with either, it only
	// interferes
	bars := append(outer, bar(125, 100, 10, rmcv.CampBlue))

	assert.Empty(t, FindArmour(bars, testArmourParams(), rmcv.CampBlue, attention))
}

func TestFindArmourDedupChainsOnLeftBar(t *testing.T) {
	// A-B and B-C share bar B as right then left bar, they do not compete
	bars := []rmcv.LightBar{
		bar(100, 100, 40, rmcv.CampRed),
		bar(150, 100, 40, rmcv.CampRed),
		bar(200, 100, 40, rmcv.CampRed),
	}

	armours := FindArmour(bars, testArmourParams(), rmcv.CampBlue, gocv.Point2f{X: 150, Y: 100})

	assert.ElementsMatch(t, [][2]float32{{100, 150}, {150, 200}}, pairCenters(armours))
}
