package objdetect

import (
	"github.com/swdee/go-rmcv"
	"gocv.io/x/gocv"
)

// Detector runs light bar extraction and armour matching on a Package
type Detector struct {
	// LightBar are the shape filter thresholds
	LightBar LightBarParams
	// Armour are the light bar pairing thresholds
	Armour ArmourParams
	// Attention is the point armours are ranked against, when nil the
	// center of the frame is used
	Attention *gocv.Point2f
}

// NewDetector returns a Detector using the given parameters
func NewDetector(lp LightBarParams, ap ArmourParams) *Detector {
	return &Detector{
		LightBar: lp,
		Armour:   ap,
	}
}

// Detect finds the armours in the Package's binary mask, classifying camps
// from its colour frame.  Package.Armours is replaced and the light bars found
// are returned for inspection.
func (d *Detector) Detect(pkg *rmcv.Package) []rmcv.LightBar {

	lightBars := FindLightBarsInBinary(pkg.Binary, d.LightBar, pkg.Frame)

	if d.Attention != nil {
		pkg.Armours = FindArmour(lightBars, d.Armour, pkg.Camp, *d.Attention)
	} else {
		pkg.Armours = FindArmourInFrame(lightBars, d.Armour, pkg.Camp,
			pkg.Frame.Cols(), pkg.Frame.Rows())
	}

	return lightBars
}
