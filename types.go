package rmcv

import (
	"fmt"
	"strings"
)

// CampType is the team colour affiliation of a light bar or armour
type CampType int

const (
	CampUnknown CampType = 0
	CampRed     CampType = 1
	CampBlue    CampType = 2
)

// String returns the name of the camp
func (c CampType) String() string {
	switch c {
	case CampRed:
		return "red"
	case CampBlue:
		return "blue"
	default:
		return "unknown"
	}
}

// Opponent returns the opposing camp, CampUnknown has no opponent
func (c CampType) Opponent() CampType {
	switch c {
	case CampRed:
		return CampBlue
	case CampBlue:
		return CampRed
	default:
		return CampUnknown
	}
}

// ParseCamp converts a camp name as used in configuration files
func ParseCamp(s string) (CampType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return CampRed, nil
	case "blue":
		return CampBlue, nil
	case "unknown", "":
		return CampUnknown, nil
	}

	return CampUnknown, fmt.Errorf("unknown camp %q", s)
}

// ArmourType is the size class of an armour plate
type ArmourType int

const (
	ArmourSmall ArmourType = 0
	ArmourBig   ArmourType = 1
)

// String returns the name of the armour size class
func (a ArmourType) String() string {
	if a == ArmourBig {
		return "big"
	}
	return "small"
}

// AimMode tags what the turret is currently aiming at
type AimMode int

const (
	AimArmour    AimMode = 0
	AimSmallRune AimMode = 1
	AimBigRune   AimMode = 2
)

// String returns the name of the aim mode
func (m AimMode) String() string {
	switch m {
	case AimSmallRune:
		return "small-rune"
	case AimBigRune:
		return "big-rune"
	default:
		return "armour"
	}
}

// ParseAimMode converts an aim mode name as used in configuration files
func ParseAimMode(s string) (AimMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "armour", "":
		return AimArmour, nil
	case "small-rune":
		return AimSmallRune, nil
	case "big-rune":
		return AimBigRune, nil
	}

	return AimArmour, fmt.Errorf("unknown aim mode %q", s)
}

// CompensateMode selects the ballistic drop model used to convert a target
// offset into a firing pitch angle
type CompensateMode int

const (
	// CompensateNone aims straight along the line of sight
	CompensateNone CompensateMode = 0
	// CompensateClassic compensates gravity drop of a drag free projectile
	CompensateClassic CompensateMode = 1
	// CompensateNI is reserved and not implemented
	CompensateNI CompensateMode = 2
)

// String returns the name of the compensation mode
func (m CompensateMode) String() string {
	switch m {
	case CompensateNone:
		return "none"
	case CompensateClassic:
		return "classic"
	case CompensateNI:
		return "ni"
	}

	return fmt.Sprintf("CompensateMode(%d)", int(m))
}

// ParseCompensateMode converts a compensation mode name as used in
// configuration files
func ParseCompensateMode(s string) (CompensateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return CompensateNone, nil
	case "classic":
		return CompensateClassic, nil
	case "ni":
		return CompensateNI, nil
	}

	return CompensateNone, fmt.Errorf("unknown compensate mode %q", s)
}
