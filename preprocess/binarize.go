package preprocess

import (
	"github.com/swdee/go-rmcv"
	"gocv.io/x/gocv"
)

// Binarizer builds the bright region mask of the enemy camp's light bars
type Binarizer struct {
	// threshold is the minimum channel difference treated as foreground
	threshold float32
	// channels holds the split BGR planes of the last frame
	channels []gocv.Mat
	// diffMat is a Mat used during the subtraction
	diffMat gocv.Mat
}

// NewBinarizer returns a Binarizer using the given channel difference
// threshold in the range 0-255
func NewBinarizer(threshold float32) *Binarizer {
	return &Binarizer{
		threshold: threshold,
		diffMat:   gocv.NewMat(),
	}
}

// Close frees memory allocated during the binarize process
func (b *Binarizer) Close() error {
	b.closeChannels()
	return b.diffMat.Close()
}

// closeChannels frees the planes of the previous split
func (b *Binarizer) closeChannels() {
	for _, c := range b.channels {
		c.Close()
	}
	b.channels = nil
}

// Threshold returns the channel difference threshold
func (b *Binarizer) Threshold() float32 {
	return b.threshold
}

// Binarize writes a single channel mask of src into dest where the colour
// channel of the enemy camp exceeds the opposing channel by more than the
// threshold.  For CampUnknown the brighter of the red and blue channels is
// used against the green channel.
func (b *Binarizer) Binarize(src gocv.Mat, enemy rmcv.CampType, dest *gocv.Mat) {

	b.closeChannels()
	b.channels = gocv.Split(src)

	// BGR channel order
	blue, green, red := b.channels[0], b.channels[1], b.channels[2]

	switch enemy {
	case rmcv.CampRed:
		gocv.Subtract(red, blue, &b.diffMat)

	case rmcv.CampBlue:
		gocv.Subtract(blue, red, &b.diffMat)

	default:
		gocv.Max(red, blue, &b.diffMat)
		gocv.Subtract(b.diffMat, green, &b.diffMat)
	}

	gocv.Threshold(b.diffMat, dest, b.threshold, 255, gocv.ThresholdBinary)
}
