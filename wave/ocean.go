package wave

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Train is one directional sine wave
type Train struct {
	Direction  mgl64.Vec2 // travel direction on the XY plane, normalized on use
	Amplitude  float64
	Wavelength float64
	Speed      float64 // phase speed along Direction
	Phase      float64 // radians
}

// height of the train at (x, y) and time t
func (tr Train) height(x, y, t float64) float64 {
	if tr.Wavelength <= 0 {
		return 0
	}

	dir := tr.Direction
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	} else {
		dir = mgl64.Vec2{1, 0}
	}

	k := 2 * math.Pi / tr.Wavelength
	return tr.Amplitude * math.Sin(k*(dir.X()*x+dir.Y()*y-tr.Speed*t)+tr.Phase)
}

// Ocean is a sea level plus a sum of wave trains evaluated at the ocean's clock.
// HeightAt may be called from many goroutines while another one advances the clock.
type Ocean struct {
	SeaLevel float64
	Trains   []Train

	mu   sync.RWMutex
	time float64
}

func NewOcean(seaLevel float64, trains ...Train) *Ocean {
	return &Ocean{SeaLevel: seaLevel, Trains: trains}
}

func (o *Ocean) HeightAt(position mgl64.Vec3) mgl64.Vec3 {
	o.mu.RLock()
	t := o.time
	o.mu.RUnlock()

	z := o.SeaLevel
	for _, tr := range o.Trains {
		z += tr.height(position.X(), position.Y(), t)
	}

	return mgl64.Vec3{position.X(), position.Y(), z}
}

func (o *Ocean) Advance(dt float64) {
	o.mu.Lock()
	o.time += dt
	o.mu.Unlock()
}

func (o *Ocean) SetTime(t float64) {
	o.mu.Lock()
	o.time = t
	o.mu.Unlock()
}

func (o *Ocean) Time() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.time
}

// MaxAmplitude is the highest crest above sea level the trains can build
func (o *Ocean) MaxAmplitude() float64 {
	var total float64
	for _, tr := range o.Trains {
		total += math.Abs(tr.Amplitude)
	}

	return total
}

// Calm is a long low swell, in meters
func Calm() *Ocean {
	return NewOcean(0,
		Train{Direction: mgl64.Vec2{1, 0}, Amplitude: 0.2, Wavelength: 40, Speed: 7.9},
	)
}

func Choppy() *Ocean {
	return NewOcean(0,
		Train{Direction: mgl64.Vec2{1, 0.2}, Amplitude: 0.5, Wavelength: 30, Speed: 6.8},
		Train{Direction: mgl64.Vec2{0.3, 1}, Amplitude: 0.25, Wavelength: 9, Speed: 3.7, Phase: 1.1},
	)
}

func Storm() *Ocean {
	return NewOcean(0,
		Train{Direction: mgl64.Vec2{1, 0}, Amplitude: 2.0, Wavelength: 80, Speed: 11.2},
		Train{Direction: mgl64.Vec2{0.7, 0.7}, Amplitude: 0.8, Wavelength: 25, Speed: 6.2, Phase: 0.4},
		Train{Direction: mgl64.Vec2{-0.2, 1}, Amplitude: 0.3, Wavelength: 7, Speed: 3.3, Phase: 2.5},
	)
}
