package rmcv

import (
	"errors"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// Package is one frame's unit of work passed between the acquisition and
// processing stages.  It owns deep copies of its images and must be closed
// by whichever stage holds it last.
type Package struct {
	// Seq is the acquisition order of the frame
	Seq int64
	// Camp is our own team
	Camp CampType
	// Mode is the current aim mode
	Mode AimMode
	// Speed is the discretized projectile speed setting
	Speed uint8
	// Pitch is the current gun elevation in degrees
	Pitch float32
	// Frame is the colour frame
	Frame gocv.Mat
	// Binary is the single channel bright region mask
	Binary gocv.Mat
	// Armours is the detection result, empty until matched
	Armours []Armour
}

// NewPackage creates a Package holding copies of frame and binary, the
// caller keeps ownership of the Mats passed in
func NewPackage(camp CampType, mode AimMode, speed uint8, pitch float32,
	frame, binary gocv.Mat) *Package {

	p := &Package{
		Camp:   camp,
		Mode:   mode,
		Speed:  speed,
		Pitch:  pitch,
		Frame:  gocv.NewMat(),
		Binary: gocv.NewMat(),
	}

	frame.CopyTo(&p.Frame)
	binary.CopyTo(&p.Binary)

	return p
}

// Clone returns a deep copy of the Package including images and armours
func (p *Package) Clone() *Package {

	c := NewPackage(p.Camp, p.Mode, p.Speed, p.Pitch, p.Frame, p.Binary)
	c.Seq = p.Seq

	if p.Armours != nil {
		c.Armours = make([]Armour, len(p.Armours))
		copy(c.Armours, p.Armours)
	}

	return c
}

// Close frees the images held by the Package
func (p *Package) Close() error {
	return errors.Join(p.Frame.Close(), p.Binary.Close())
}

// Sequence stamps packages with their acquisition order starting from 1.  The
// zero value is ready to use and safe for concurrent producers.
type Sequence struct {
	n atomic.Int64
}

// Next returns the next sequence number
func (s *Sequence) Next() int64 {
	return s.n.Add(1)
}

// Stamp sets the package's Seq to the next sequence number and returns it
func (s *Sequence) Stamp(p *Package) *Package {
	p.Seq = s.Next()
	return p
}
