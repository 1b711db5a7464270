package buoyancy

import (
	"errors"
	"image/color"
	"math"

	"github.com/akmonengine/flotsam/actor"
	"github.com/akmonengine/flotsam/constraint"
	"github.com/akmonengine/flotsam/wave"
	"github.com/go-gl/mathgl/mgl64"
)

type appliedForce struct {
	force    mgl64.Vec3
	position mgl64.Vec3
}

// fakeBody records every write a component makes
type fakeBody struct {
	simulating       bool
	transform        actor.Transform
	mass             float64
	linearDamping    float64
	angularDamping   float64
	velocity         mgl64.Vec3
	angularVelocity  mgl64.Vec3
	noRepresentation bool

	forces         []appliedForce
	positionWrites []mgl64.Vec3
	dampingWrites  int
	velocityWrites int
}

func newFakeBody(position mgl64.Vec3, mass float64) *fakeBody {
	return &fakeBody{
		simulating: true,
		transform: actor.Transform{
			Position: position,
			Rotation: mgl64.QuatIdent(),
		},
		mass: mass,
	}
}

func (b *fakeBody) IsSimulatingPhysics() bool       { return b.simulating }
func (b *fakeBody) WorldTransform() actor.Transform { return b.transform }
func (b *fakeBody) Mass() float64                   { return b.mass }
func (b *fakeBody) LinearDamping() float64          { return b.linearDamping }
func (b *fakeBody) AngularDamping() float64         { return b.angularDamping }
func (b *fakeBody) LinearVelocity() mgl64.Vec3      { return b.velocity }

func (b *fakeBody) SetWorldPosition(position mgl64.Vec3, sweep bool) {
	b.positionWrites = append(b.positionWrites, position)
	b.transform.Position = position
}

func (b *fakeBody) SetLinearDamping(damping float64) {
	b.dampingWrites++
	b.linearDamping = damping
}

func (b *fakeBody) SetAngularDamping(damping float64) {
	b.dampingWrites++
	b.angularDamping = damping
}

func (b *fakeBody) SetLinearVelocity(velocity mgl64.Vec3) {
	b.velocityWrites++
	b.velocity = velocity
}

func (b *fakeBody) AddForceAtPosition(force, position mgl64.Vec3) {
	b.forces = append(b.forces, appliedForce{force: force, position: position})
}

func (b *fakeBody) VelocityAtPoint(position mgl64.Vec3, bone string) (mgl64.Vec3, bool) {
	if b.noRepresentation {
		return mgl64.Vec3{99, 99, 99}, false
	}

	return b.velocity.Add(b.angularVelocity.Cross(position.Sub(b.transform.Position))), true
}

func (b *fakeBody) totalForce() mgl64.Vec3 {
	var total mgl64.Vec3
	for _, f := range b.forces {
		total = total.Add(f.force)
	}

	return total
}

// fakeScene serves gravity, an optional sampler and an optional joint factory
type fakeScene struct {
	gravityZ float64
	sampler  wave.Sampler

	factoryErr error
	created    []constraint.Settings
	anchors    []mgl64.Vec3
}

func (s *fakeScene) GravityZ() float64 { return s.gravityZ }

func (s *fakeScene) FindWaveSampler() (wave.Sampler, bool) {
	if s.sampler == nil {
		return nil, false
	}

	return s.sampler, true
}

func (s *fakeScene) CreateUprightConstraint(body Body, anchor mgl64.Vec3, settings constraint.Settings) (constraint.Constraint, error) {
	if s.factoryErr != nil {
		return nil, s.factoryErr
	}
	s.created = append(s.created, settings)
	s.anchors = append(s.anchors, anchor)

	return noopConstraint{}, nil
}

// sceneWithoutFactory hides the factory methods of fakeScene
type sceneWithoutFactory struct {
	scene *fakeScene
}

func (s sceneWithoutFactory) GravityZ() float64                     { return s.scene.GravityZ() }
func (s sceneWithoutFactory) FindWaveSampler() (wave.Sampler, bool) { return s.scene.FindWaveSampler() }

type noopConstraint struct{}

func (noopConstraint) SolvePosition(dt float64) {}
func (noopConstraint) SolveVelocity(dt float64) {}

var errFactory = errors.New("factory refused")

type drawnSphere struct {
	center mgl64.Vec3
	radius float64
	color  color.RGBA
}

type recordDrawer struct {
	spheres []drawnSphere
}

func (d *recordDrawer) DrawSphere(center mgl64.Vec3, radius float64, c color.RGBA) {
	d.spheres = append(d.spheres, drawnSphere{center: center, radius: radius, color: c})
}

// countingSampler counts HeightAt calls
type countingSampler struct {
	level float64
	calls int
}

func (s *countingSampler) HeightAt(position mgl64.Vec3) mgl64.Vec3 {
	s.calls++
	return mgl64.Vec3{position.X(), position.Y(), s.level}
}

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func vec3AlmostEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon) &&
		almostEqual(a.Z(), b.Z(), epsilon)
}
