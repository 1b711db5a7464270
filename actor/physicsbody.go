package actor

import "github.com/go-gl/mathgl/mgl64"

// The methods below expose a RigidBody through the capability set a buoyancy
// component drives every tick.

// IsSimulatingPhysics reports whether forces and integration apply to the body
func (rb *RigidBody) IsSimulatingPhysics() bool {
	return rb.BodyType == BodyTypeDynamic
}

func (rb *RigidBody) WorldTransform() Transform {
	return rb.Transform
}

// SetWorldPosition teleports the body. sweep is accepted for API parity with hosts
// that run collision sweeps; this engine has no collision pass so the move is direct.
func (rb *RigidBody) SetWorldPosition(position mgl64.Vec3, sweep bool) {
	rb.PreviousTransform.Position = position
	rb.Transform.Position = position
	rb.Shape.ComputeAABB(rb.Transform)
}

func (rb *RigidBody) Mass() float64 {
	return rb.Material.GetMass()
}

func (rb *RigidBody) LinearDamping() float64 {
	return rb.Material.LinearDamping
}

func (rb *RigidBody) AngularDamping() float64 {
	return rb.Material.AngularDamping
}

func (rb *RigidBody) SetLinearDamping(damping float64) {
	rb.Material.LinearDamping = damping
}

func (rb *RigidBody) SetAngularDamping(damping float64) {
	rb.Material.AngularDamping = damping
}

func (rb *RigidBody) LinearVelocity() mgl64.Vec3 {
	return rb.Velocity
}

func (rb *RigidBody) SetLinearVelocity(velocity mgl64.Vec3) {
	if rb.BodyType == BodyTypeStatic {
		return
	}
	rb.Velocity = velocity
}

// VelocityAtPoint returns v + ω × (p - com), the velocity of the material point
// coincident with the world position. A single body has no bones, bone is ignored.
// Static bodies have no simulated representation and report false.
func (rb *RigidBody) VelocityAtPoint(position mgl64.Vec3, bone string) (mgl64.Vec3, bool) {
	if rb.BodyType == BodyTypeStatic {
		return mgl64.Vec3{}, false
	}

	r := position.Sub(rb.Transform.Position)
	return rb.Velocity.Add(rb.AngularVelocity.Cross(r)), true
}
