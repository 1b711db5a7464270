package constraint

import (
	"math"

	"github.com/akmonengine/flotsam/actor"
	"github.com/go-gl/mathgl/mgl64"
)

type LinearMotion uint8

const (
	LinearFree LinearMotion = iota
	LinearLocked
)

type AngularMotion uint8

const (
	AngularFree AngularMotion = iota
	AngularLimited
	AngularLocked
)

// Settings describes a six degrees of freedom joint between a body and the world.
// Angular axes are expressed in the body frame captured at creation:
// twist is about X, swing2 about Y, swing1 about Z.
// Soft limits behave as springs. Stiffness and damping are accelerations
// (rad/s² per rad and per rad/s), independent of the body inertia.
type Settings struct {
	LinearX LinearMotion
	LinearY LinearMotion
	LinearZ LinearMotion

	Swing1 AngularMotion
	Swing2 AngularMotion
	Twist  AngularMotion

	SwingLimitSoft bool
	TwistLimitSoft bool

	// Limit angles in degrees
	Swing1LimitAngle float64
	Swing2LimitAngle float64
	TwistLimitAngle  float64

	SwingStiffness float64
	SwingDamping   float64
	TwistStiffness float64
	TwistDamping   float64
}

// UprightSettings frees every linear axis and limits every angular axis to zero degrees
// with a soft limit: a righting spring pulling the body back to its initial orientation.
func UprightSettings(stiffness, damping float64) Settings {
	return Settings{
		LinearX: LinearFree,
		LinearY: LinearFree,
		LinearZ: LinearFree,

		Swing1: AngularLimited,
		Swing2: AngularLimited,
		Twist:  AngularLimited,

		SwingLimitSoft: true,
		TwistLimitSoft: true,

		SwingStiffness: stiffness,
		SwingDamping:   damping,
		TwistStiffness: stiffness,
		TwistDamping:   damping,
	}
}

// angularAxis is the resolved limit of one rotation axis
type angularAxis struct {
	motion    AngularMotion
	limit     float64 // radians
	soft      bool
	stiffness float64
	damping   float64
}

// SixDOF pins a body to a world anchor and to its creation-time orientation,
// each axis being free, limited or locked according to Settings
type SixDOF struct {
	Body     *actor.RigidBody
	Anchor   mgl64.Vec3
	Settings Settings

	localAnchor mgl64.Vec3
	reference   mgl64.Quat
}

func NewSixDOF(body *actor.RigidBody, anchor mgl64.Vec3, settings Settings) *SixDOF {
	return &SixDOF{
		Body:        body,
		Anchor:      anchor,
		Settings:    settings,
		localAnchor: body.Transform.InverseTransformPosition(anchor),
		reference:   body.Transform.Rotation,
	}
}

func (c *SixDOF) Bodies() []*actor.RigidBody {
	return []*actor.RigidBody{c.Body}
}

// Reference is the orientation the angular limits are measured from
func (c *SixDOF) Reference() mgl64.Quat {
	return c.reference
}

// axes returns twist (X), swing2 (Y), swing1 (Z)
func (c *SixDOF) axes() [3]angularAxis {
	s := c.Settings
	return [3]angularAxis{
		{s.Twist, mgl64.DegToRad(s.TwistLimitAngle), s.TwistLimitSoft, s.TwistStiffness, s.TwistDamping},
		{s.Swing2, mgl64.DegToRad(s.Swing2LimitAngle), s.SwingLimitSoft, s.SwingStiffness, s.SwingDamping},
		{s.Swing1, mgl64.DegToRad(s.Swing1LimitAngle), s.SwingLimitSoft, s.SwingStiffness, s.SwingDamping},
	}
}

// AngularError returns the rotation away from the reference, in the reference frame,
// as (twist, swing2, swing1) angles in radians
func (c *SixDOF) AngularError() mgl64.Vec3 {
	return swingTwist(c.reference.Inverse().Mul(c.Body.Transform.Rotation))
}

// excess returns, per axis, how far the error goes past the limit (signed)
func (c *SixDOF) excess() mgl64.Vec3 {
	angles := c.AngularError()
	axes := c.axes()

	var out mgl64.Vec3
	for i, axis := range axes {
		var limit float64
		switch axis.motion {
		case AngularFree:
			continue
		case AngularLimited:
			limit = math.Abs(axis.limit)
		case AngularLocked:
			limit = 0
		}

		if over := math.Abs(angles[i]) - limit; over > 0 {
			out[i] = math.Copysign(over, angles[i])
		}
	}

	return out
}

// SolvePosition handles locked linear axes and hard angular limits
func (c *SixDOF) SolvePosition(dt float64) {
	rb := c.Body
	if rb.BodyType != actor.BodyTypeDynamic || rb.IsSleeping {
		return
	}

	// ========== LINEAR ==========
	delta := c.Anchor.Sub(rb.Transform.TransformPosition(c.localAnchor))
	locked := [3]bool{
		c.Settings.LinearX == LinearLocked,
		c.Settings.LinearY == LinearLocked,
		c.Settings.LinearZ == LinearLocked,
	}
	for i, l := range locked {
		if l {
			rb.Transform.Position[i] += delta[i]
		}
	}

	// ========== ANGULAR (hard limits) ==========
	excess := c.excess()
	var correction mgl64.Vec3
	for i, axis := range c.axes() {
		if axis.motion == AngularLocked || (axis.motion == AngularLimited && !axis.soft) {
			correction[i] = -excess[i]
		}
	}
	if correction.Len() < 1e-12 {
		return
	}

	worldCorrection := c.reference.Rotate(correction)
	angle := worldCorrection.Len()
	rb.Transform.Rotation = mgl64.QuatRotate(angle, worldCorrection.Mul(1/angle)).Mul(rb.Transform.Rotation).Normalize()
	rb.Transform.InverseRotation = rb.Transform.Rotation.Inverse()
}

// SolveVelocity applies soft limit springs and removes velocity driving into hard limits
func (c *SixDOF) SolveVelocity(dt float64) {
	rb := c.Body
	if rb.BodyType != actor.BodyTypeDynamic || rb.IsSleeping || dt <= 0 {
		return
	}

	// ========== LINEAR ==========
	if c.Settings.LinearX == LinearLocked {
		rb.Velocity[0] = 0
	}
	if c.Settings.LinearY == LinearLocked {
		rb.Velocity[1] = 0
	}
	if c.Settings.LinearZ == LinearLocked {
		rb.Velocity[2] = 0
	}

	// ========== ANGULAR ==========
	excess := c.excess()
	omega := c.reference.Inverse().Rotate(rb.AngularVelocity)

	for i, axis := range c.axes() {
		if excess[i] == 0 {
			continue
		}

		if axis.motion == AngularLimited && axis.soft {
			// Implicit spring: stable for any stiffness and timestep
			k, d := axis.stiffness, axis.damping
			omega[i] = (omega[i] - k*excess[i]*dt) / (1 + d*dt + k*dt*dt)
		} else if omega[i]*excess[i] > 0 {
			omega[i] = 0
		}
	}

	rb.AngularVelocity = c.reference.Rotate(omega)
	clampSmallVelocities(rb)
}

// swingTwist decomposes q into a twist about X followed by a swing about an axis in the
// YZ plane and returns (twist, swingY, swingZ) in radians
func swingTwist(q mgl64.Quat) mgl64.Vec3 {
	q = q.Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}

	twist := mgl64.Quat{W: q.W, V: mgl64.Vec3{q.V.X(), 0, 0}}
	twistAngle := 0.0
	if twist.Len() > 1e-12 {
		twist = twist.Normalize()
		twistAngle = 2 * math.Atan2(twist.V.X(), twist.W)
	} else {
		// Exactly 180° of swing, the twist is undefined
		twist = mgl64.QuatIdent()
	}

	swing := q.Mul(twist.Inverse())
	if swing.W < 0 {
		swing = swing.Scale(-1)
	}
	var swingVec mgl64.Vec3
	if l := swing.V.Len(); l > 1e-12 {
		swingVec = swing.V.Mul(2 * math.Atan2(l, swing.W) / l)
	}

	return mgl64.Vec3{twistAngle, swingVec.Y(), swingVec.Z()}
}
