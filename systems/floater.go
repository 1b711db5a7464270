package systems

import (
	"github.com/akmonengine/flotsam"
	"github.com/akmonengine/flotsam/buoyancy"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

type FloaterData struct {
	Component *buoyancy.Component
	// Result of the last tick
	Last buoyancy.Result
}

var (
	Floater = donburi.NewComponentType[FloaterData]()
	// Anchored floaters are skipped by the buoyancy system
	Anchored = donburi.NewTag().SetName("Anchored")
)

var floaters = donburi.NewQuery(filter.And(
	filter.Contains(Floater),
	filter.Not(filter.Contains(Anchored)),
))

// NewBuoyancySystem returns an update system ticking the floater of every entity.
// The components must be initialized by the caller; the host loop integrates the bodies.
func NewBuoyancySystem(dt float64) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		floaters.Each(e.World, func(entry *donburi.Entry) {
			floater := Floater.Get(entry)
			if floater.Component == nil {
				return
			}

			floater.Last = floater.Component.Tick(dt)
		})
	}
}

// NewWorldSystem returns an update system stepping world once per update.
// Floaters registered with the world are ticked by the world itself and
// must not be attached to entities as well.
func NewWorldSystem(world *flotsam.World, dt float64) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		world.Step(dt)
	}
}
