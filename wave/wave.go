// Package wave provides water surface height oracles for floating bodies.
package wave

import "github.com/go-gl/mathgl/mgl64"

// Sampler returns the water surface under a world position.
// Only the Z component of the result is meaningful: it is the surface height at the
// position's X/Y. Implementations must allow concurrent calls.
type Sampler interface {
	HeightAt(position mgl64.Vec3) mgl64.Vec3
}

// Clock is implemented by samplers whose surface moves with time
type Clock interface {
	Advance(dt float64)
}

// SamplerFunc adapts a plain function to a Sampler
type SamplerFunc func(position mgl64.Vec3) mgl64.Vec3

func (f SamplerFunc) HeightAt(position mgl64.Vec3) mgl64.Vec3 {
	return f(position)
}

// Flat is still water at a constant level
type Flat struct {
	Level float64
}

func (f Flat) HeightAt(position mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{position.X(), position.Y(), f.Level}
}
