package buoyancy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Config holds the static parameters of a floating body.
// It is read every tick; the owner may change it between ticks.
type Config struct {
	// Density of the body material
	MeshDensity float64
	// Density of the surrounding fluid
	FluidDensity float64

	// Damping added on top of the body's own, scaled by the fraction of submerged test points
	FluidLinearDamping  float64
	FluidAngularDamping float64

	// Per-axis damping of the local velocity at each submerged test point
	VelocityDamper mgl64.Vec3

	ClampMaxVelocity      bool
	MaxUnderwaterVelocity float64

	// Radius of the test spheres, the sign is discarded at initialization
	TestPointRadius float64
	// Body-local sample positions. At least one point is required for buoyancy.
	TestPoints []mgl64.Vec3
	// Per-point density overriding MeshDensity, keyed by test point index.
	// Useful for half-sinking objects.
	PointDensityOverride map[int]float64

	DrawDebugPoints bool

	// Righting spring resisting rotation away from the initial orientation
	EnableStayUprightConstraint bool
	StayUprightStiffness        float64
	StayUprightDamping          float64
}

// DefaultConfig returns a wooden body in sea water, in centimeters
func DefaultConfig() Config {
	return Config{
		MeshDensity:           600,
		FluidDensity:          1025,
		FluidLinearDamping:    1,
		FluidAngularDamping:   1,
		VelocityDamper:        mgl64.Vec3{0.1, 0.1, 0.1},
		MaxUnderwaterVelocity: 1000,
		TestPointRadius:       10,
		StayUprightStiffness:  50,
		StayUprightDamping:    5,
	}
}

// PointDensity resolves the density used for the test point at index i
func (c *Config) PointDensity(i int) float64 {
	if density, ok := c.PointDensityOverride[i]; ok {
		return density
	}

	return c.MeshDensity
}

// Validate reports every configuration problem. None of them is fatal: a component
// with an invalid config still ticks, skipping what cannot be computed.
func (c *Config) Validate() error {
	var errs []error

	if len(c.TestPoints) == 0 {
		errs = append(errs, ErrNoTestPoints)
	}
	if c.MeshDensity <= 0 {
		errs = append(errs, fmt.Errorf("mesh density %v: %w", c.MeshDensity, ErrNonPositiveDensity))
	}
	if c.FluidDensity <= 0 {
		errs = append(errs, fmt.Errorf("fluid density %v: %w", c.FluidDensity, ErrNonPositiveDensity))
	}

	indexes := make([]int, 0, len(c.PointDensityOverride))
	for i := range c.PointDensityOverride {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	for _, i := range indexes {
		if i < 0 || i >= len(c.TestPoints) {
			errs = append(errs, fmt.Errorf("density override for test point %d: no such point", i))
		}
		if density := c.PointDensityOverride[i]; density <= 0 {
			errs = append(errs, fmt.Errorf("density override for test point %d is %v: %w", i, density, ErrNonPositiveDensity))
		}
	}

	if c.TestPointRadius == 0 {
		errs = append(errs, errors.New("test point radius is zero, submersion is a step"))
	}
	if c.FluidLinearDamping < 0 || c.FluidAngularDamping < 0 {
		errs = append(errs, errors.New("fluid damping must not be negative"))
	}
	if c.VelocityDamper.X() < 0 || c.VelocityDamper.Y() < 0 || c.VelocityDamper.Z() < 0 {
		errs = append(errs, errors.New("velocity damper must not be negative"))
	}
	if c.MaxUnderwaterVelocity < 0 {
		errs = append(errs, errors.New("max underwater velocity must not be negative"))
	}
	if c.StayUprightStiffness < 0 || c.StayUprightDamping < 0 {
		errs = append(errs, errors.New("stay upright stiffness and damping must not be negative"))
	}

	return errors.Join(errs...)
}

// BoxTestPoints returns the 8 corners of a box centered on the body origin
func BoxTestPoints(halfExtents mgl64.Vec3) []mgl64.Vec3 {
	hx, hy, hz := halfExtents.X(), halfExtents.Y(), halfExtents.Z()

	return []mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{-hx, +hy, -hz},
		{+hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{-hx, +hy, +hz},
		{+hx, +hy, +hz},
	}
}
