package rmcv

// ShootFactor is the aim solution for a single target
type ShootFactor struct {
	// PitchAngle is the gun elevation in degrees
	PitchAngle float32
	// YawAngle is the gun heading in degrees
	YawAngle float32
	// EstimateAirTime is the projectile flight time in seconds
	EstimateAirTime float64
}
