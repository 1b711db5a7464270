package actor

import "github.com/go-gl/mathgl/mgl64"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Draft is how far the box reaches below a water level along Z, clamped to [0, height]
func (a AABB) Draft(level float64) float64 {
	height := a.Max.Z() - a.Min.Z()
	draft := level - a.Min.Z()

	return max(0, min(draft, height))
}
