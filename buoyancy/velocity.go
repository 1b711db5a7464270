package buoyancy

import "github.com/go-gl/mathgl/mgl64"

// VelocityAtPoint returns the linear velocity of the material point of body coincident
// with position, angular contribution included. A missing body or one without a valid
// simulated representation yields the zero vector.
func VelocityAtPoint(body Body, position mgl64.Vec3, bone string) mgl64.Vec3 {
	if body == nil {
		return mgl64.Vec3{}
	}

	velocity, ok := body.VelocityAtPoint(position, bone)
	if !ok {
		return mgl64.Vec3{}
	}

	return velocity
}
