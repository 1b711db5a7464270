package buoyancy

import (
	"github.com/akmonengine/flotsam/wave"
	"github.com/go-gl/mathgl/mgl64"
)

// Mode tells which branch a tick took
type Mode uint8

const (
	// ModeInert: no wave sampler bound, nothing happened
	ModeInert Mode = iota
	// ModeKinematic: the body does not simulate physics and was snapped to the surface
	ModeKinematic
	// ModeNoTestPoints: nothing to sample, nothing happened
	ModeNoTestPoints
	// ModeSimulated: forces, velocity clamp and damping were applied
	ModeSimulated
	// ModeDestroyed: the component was destroyed, nothing happened
	ModeDestroyed
)

func (m Mode) String() string {
	switch m {
	case ModeInert:
		return "inert"
	case ModeKinematic:
		return "kinematic"
	case ModeNoTestPoints:
		return "no test points"
	case ModeSimulated:
		return "simulated"
	case ModeDestroyed:
		return "destroyed"
	}

	return "unknown"
}

// PointSample is what a tick computed for one test point
type PointSample struct {
	Index      int
	World      mgl64.Vec3
	WaveZ      float64
	Underwater bool
	// Depth multiplier in [0, 1]
	Depth float64
	// Force applied at World, zero when dry or skipped
	Force mgl64.Vec3
}

type Result struct {
	Mode      Mode
	Submerged int
	Total     int
	Clamped   bool
	Points    []PointSample
}

// SubmergedFraction is Submerged / Total, zero without test points
func (r Result) SubmergedFraction() float64 {
	if r.Total == 0 {
		return 0
	}

	return float64(r.Submerged) / float64(r.Total)
}

// Env carries the collaborators of one tick
type Env struct {
	Sampler  wave.Sampler
	GravityZ float64
	// Optional, used when Config.DrawDebugPoints is set
	Debug DebugDrawer
	// Optional, called when a submerged point has a non-positive density
	OnInvalidDensity func(index int, density float64)
}

// Evaluate runs one buoyancy tick on body. It reads cfg and state, samples the
// waves at every test point and writes forces, velocity and damping to the body.
func Evaluate(body Body, cfg *Config, state Derived, env Env) Result {
	if env.Sampler == nil {
		return Result{Mode: ModeInert}
	}

	if !body.IsSimulatingPhysics() {
		snapToSurface(body, env.Sampler)
		return Result{Mode: ModeKinematic}
	}

	total := len(cfg.TestPoints)
	if total < 1 {
		return Result{Mode: ModeNoTestPoints}
	}

	result := Result{
		Mode:   ModeSimulated,
		Total:  total,
		Points: make([]PointSample, total),
	}
	transform := body.WorldTransform()
	mass := body.Mass()

	for i, testPoint := range cfg.TestPoints {
		sample := PointSample{
			Index: i,
			World: transform.TransformPosition(testPoint),
		}
		sample.WaveZ = env.Sampler.HeightAt(sample.World).Z()

		// Touching the water: the surface is above the bottom of the test sphere
		boundary := sample.World.Z() + state.SignedRadius
		if sample.WaveZ > boundary {
			sample.Underwater = true
			result.Submerged++

			sample.Depth = depthMultiplier(sample.WaveZ-boundary, state.TestPointRadius)

			density := cfg.PointDensity(i)
			if density > 0 {
				// (Volume(Mass / Density) * Fluid Density * -Gravity) / Total Points * Depth Multiplier
				buoyancyZ := mass / density * cfg.FluidDensity * -env.GravityZ / float64(total) * sample.Depth

				localVelocity := VelocityAtPoint(body, sample.World, "")
				damping := mgl64.Vec3{
					-localVelocity.X() * cfg.VelocityDamper.X(),
					-localVelocity.Y() * cfg.VelocityDamper.Y(),
					-localVelocity.Z() * cfg.VelocityDamper.Z(),
				}.Mul(mass * sample.Depth)

				sample.Force = mgl64.Vec3{damping.X(), damping.Y(), damping.Z() + buoyancyZ}
				body.AddForceAtPosition(sample.Force, sample.World)
			} else if env.OnInvalidDensity != nil {
				env.OnInvalidDensity(i, density)
			}
		}

		if cfg.DrawDebugPoints && env.Debug != nil {
			debugColor := ColorDry
			if sample.Underwater {
				debugColor = ColorSubmerged
			}
			env.Debug.DrawSphere(sample.World, state.TestPointRadius, debugColor)
		}

		result.Points[i] = sample
	}

	if cfg.ClampMaxVelocity && result.Submerged > 0 {
		// A negative limit stops the body rather than reversing it
		limit := max(0, cfg.MaxUnderwaterVelocity)
		velocity := body.LinearVelocity()
		if speed := velocity.Len(); speed > limit {
			body.SetLinearVelocity(velocity.Mul(limit / speed))
			result.Clamped = true
		}
	}

	submerged := float64(result.Submerged)
	body.SetLinearDamping(state.BaseLinearDamping + cfg.FluidLinearDamping*submerged/float64(total))
	body.SetAngularDamping(state.BaseAngularDamping + cfg.FluidAngularDamping*submerged/float64(total))

	return result
}

// depthMultiplier ramps linearly from 0 at the boundary to 1 once the test sphere
// is submerged by its full diameter
func depthMultiplier(depth, radius float64) float64 {
	if radius == 0 {
		if depth > 0 {
			return 1
		}
		return 0
	}

	return mgl64.Clamp(depth/(2*radius), 0, 1)
}

// snapToSurface moves a non-simulated body to the wave height under it, keeping X/Y
func snapToSurface(body Body, sampler wave.Sampler) {
	position := body.WorldTransform().Position
	waveZ := sampler.HeightAt(position).Z()

	body.SetWorldPosition(mgl64.Vec3{position.X(), position.Y(), waveZ}, true)
}
