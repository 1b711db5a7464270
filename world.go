package flotsam

import (
	"errors"
	"fmt"
	"slices"

	"github.com/akmonengine/flotsam/actor"
	"github.com/akmonengine/flotsam/buoyancy"
	"github.com/akmonengine/flotsam/constraint"
	"github.com/akmonengine/flotsam/wave"
	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_WORKERS = 1

var (
	ErrUnsupportedBody = errors.New("body is not a rigid body of this world")
	ErrBodyHasFloater  = errors.New("body already has a floater")
)

type World struct {
	// List of all rigid bodies in the world
	Bodies []*actor.RigidBody
	// Gravity acceleration (m/s², or N/kg)
	Gravity  mgl64.Vec3
	Substeps int
	Workers  int

	// Wave samplers of the scene, the first one is handed to floaters without an explicit one
	Samplers []wave.Sampler
	// Buoyancy components, at most one per body
	Floaters    []*buoyancy.Component
	Constraints []constraint.Constraint

	Events Events
}

func NewWorld(gravity mgl64.Vec3, substeps int) *World {
	return &World{
		Gravity:  gravity,
		Substeps: substeps,
		Workers:  DEFAULT_WORKERS,
		Events:   NewEvents(),
	}
}

// AddBody adds a rigid body to the world
func (w *World) AddBody(body *actor.RigidBody) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a rigid body, destroys its floaters and drops its constraints
func (w *World) RemoveBody(body *actor.RigidBody) {
	w.Bodies = slices.DeleteFunc(w.Bodies, func(b *actor.RigidBody) bool {
		return b == body
	})

	w.Floaters = slices.DeleteFunc(w.Floaters, func(c *buoyancy.Component) bool {
		if rb, ok := c.Body.(*actor.RigidBody); ok && rb == body {
			c.Destroy()
			w.Events.forget(c)
			return true
		}
		return false
	})

	w.Constraints = slices.DeleteFunc(w.Constraints, func(c constraint.Constraint) bool {
		withBodies, ok := c.(constraint.Bodies)
		return ok && slices.Contains(withBodies.Bodies(), body)
	})

	delete(w.Events.sleepStates, body)
}

func (w *World) AddSampler(sampler wave.Sampler) {
	w.Samplers = append(w.Samplers, sampler)
}

// AddFloater initializes the component against this world and ticks it every Step.
// A body carries at most one floater: floaters of a step are ticked concurrently.
func (w *World) AddFloater(floater *buoyancy.Component) error {
	if floater.Initialized() {
		return buoyancy.ErrAlreadyInitialized
	}
	for _, registered := range w.Floaters {
		if registered.Body == floater.Body {
			return fmt.Errorf("floater on %T: %w", floater.Body, ErrBodyHasFloater)
		}
	}

	if err := floater.Initialize(w); err != nil {
		return err
	}
	w.Floaters = append(w.Floaters, floater)

	return nil
}

func (w *World) AddConstraint(c constraint.Constraint) {
	w.Constraints = append(w.Constraints, c)
}

// GravityZ returns the signed vertical gravity
func (w *World) GravityZ() float64 {
	return w.Gravity.Z()
}

// FindWaveSampler returns the first registered sampler
func (w *World) FindWaveSampler() (wave.Sampler, bool) {
	if len(w.Samplers) == 0 {
		return nil, false
	}

	return w.Samplers[0], true
}

// CreateUprightConstraint builds a six degrees of freedom joint on one of the world's
// bodies and registers it; the world owns and solves it from then on
func (w *World) CreateUprightConstraint(body buoyancy.Body, anchor mgl64.Vec3, settings constraint.Settings) (constraint.Constraint, error) {
	rb, ok := body.(*actor.RigidBody)
	if !ok || !slices.Contains(w.Bodies, rb) {
		return nil, fmt.Errorf("upright constraint on %T: %w", body, ErrUnsupportedBody)
	}

	joint := constraint.NewSixDOF(rb, anchor, settings)
	w.AddConstraint(joint)

	return joint, nil
}

type floaterTick struct {
	floater *buoyancy.Component
	result  buoyancy.Result
}

func (w *World) Step(dt float64) {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)
	substeps := max(1, w.Substeps)
	h := dt / float64(substeps)

	// Phase 1: Move the water
	for _, sampler := range w.Samplers {
		if clock, ok := sampler.(wave.Clock); ok {
			clock.Advance(dt)
		}
	}

	// Phase 2: Buoyancy, every force is issued before integration
	ticks := w.tickFloaters(dt)

	for range substeps {
		// Phase 3: Integration with this step's forces
		w.integrate(h)

		// Phase 4: Constraint positions
		w.solvePosition(h)

		// Phase 5: Velocities from the corrected positions
		w.update(h)

		// Phase 6: Constraint velocities
		w.solveVelocity(h)
	}

	w.trySleep(dt)
	w.clearForces()

	w.Events.recordWaterline(ticks)
	w.Events.processSleepEvents(w.Bodies)
	w.Events.flush()
}

func (w *World) tickFloaters(dt float64) []*floaterTick {
	ticks := make([]*floaterTick, len(w.Floaters))
	for i, floater := range w.Floaters {
		ticks[i] = &floaterTick{floater: floater}
	}

	task(w.Workers, ticks, func(tick *floaterTick) {
		tick.result = tick.floater.Tick(dt)
	})

	return ticks
}

func (w *World) integrate(h float64) {
	task(w.Workers, w.Bodies, func(body *actor.RigidBody) {
		body.Integrate(h, w.Gravity)
	})
}

// Constraints may share bodies, they are solved sequentially
func (w *World) solvePosition(h float64) {
	for _, c := range w.Constraints {
		c.SolvePosition(h)
	}
}

func (w *World) update(h float64) {
	task(w.Workers, w.Bodies, func(body *actor.RigidBody) {
		body.Update(h)
	})
}

func (w *World) solveVelocity(h float64) {
	for _, c := range w.Constraints {
		c.SolveVelocity(h)
	}
}

// trySleep sets the body to sleep if its velocity is lower than the threshold, for a given duration
// this method is too simple to use a task, it slows down in multiple goroutines
func (w *World) trySleep(dt float64) {
	for _, body := range w.Bodies {
		body.TrySleep(dt, 0.1, 0.05)
	}
}

func (w *World) clearForces() {
	for _, body := range w.Bodies {
		body.ClearForces()
	}
}
