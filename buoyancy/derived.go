package buoyancy

import "math"

// Derived is computed once at initialization and passed alongside the config to
// every tick. It never changes afterwards.
type Derived struct {
	// Always non-negative
	TestPointRadius float64
	// TestPointRadius signed by gravity, so the submersion test holds in upside down worlds
	SignedRadius float64

	// Body damping before any fluid damping, restored when nothing is submerged
	BaseLinearDamping  float64
	BaseAngularDamping float64
}

// Derive snapshots the body damping and signs the test point radius.
// Zero gravity signs the radius as positive.
func Derive(cfg *Config, body Body, gravityZ float64) Derived {
	radius := math.Abs(cfg.TestPointRadius)

	return Derived{
		TestPointRadius:    radius,
		SignedRadius:       gravitySign(gravityZ) * radius,
		BaseLinearDamping:  body.LinearDamping(),
		BaseAngularDamping: body.AngularDamping(),
	}
}

func gravitySign(gravityZ float64) float64 {
	if gravityZ < 0 {
		return -1
	}

	return 1
}
