package buoyancy

import (
	"errors"
	"image/color"

	"github.com/akmonengine/flotsam/actor"
	"github.com/akmonengine/flotsam/constraint"
	"github.com/akmonengine/flotsam/wave"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrNoTestPoints        = errors.New("no test points, buoyancy cannot apply")
	ErrNonPositiveDensity  = errors.New("density must be positive")
	ErrAlreadyInitialized  = errors.New("component already initialized")
	ErrNoConstraintFactory = errors.New("no constraint factory")
)

// Debug colors of a test point sphere
var (
	ColorSubmerged = color.RGBA{R: 0, G: 51, B: 178, A: 204}
	ColorDry       = color.RGBA{R: 204, G: 178, B: 51, A: 204}
)

// Body is the rigid body capability set driven by a buoyancy component
type Body interface {
	IsSimulatingPhysics() bool
	WorldTransform() actor.Transform
	SetWorldPosition(position mgl64.Vec3, sweep bool)

	Mass() float64
	LinearDamping() float64
	AngularDamping() float64
	SetLinearDamping(damping float64)
	SetAngularDamping(damping float64)

	LinearVelocity() mgl64.Vec3
	SetLinearVelocity(velocity mgl64.Vec3)
	AddForceAtPosition(force, position mgl64.Vec3)

	// VelocityAtPoint reports false when the body (or the named bone)
	// has no valid simulated representation
	VelocityAtPoint(position mgl64.Vec3, bone string) (mgl64.Vec3, bool)
}

// GravityProvider returns the signed vertical gravity; magnitude and sign both matter
type GravityProvider interface {
	GravityZ() float64
}

// Scene is what a component needs from the world it is initialized in
type Scene interface {
	GravityProvider
	// FindWaveSampler returns the first wave sampler of the scene, if any
	FindWaveSampler() (wave.Sampler, bool)
}

// ConstraintFactory builds the stay-upright joint. The factory owns the
// returned constraint's lifetime.
type ConstraintFactory interface {
	CreateUprightConstraint(body Body, anchor mgl64.Vec3, settings constraint.Settings) (constraint.Constraint, error)
}

type DebugDrawer interface {
	DrawSphere(center mgl64.Vec3, radius float64, color color.RGBA)
}
