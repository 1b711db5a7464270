package flotsam

import (
	"github.com/akmonengine/flotsam/actor"
	"github.com/akmonengine/flotsam/buoyancy"
)

const (
	WATER_ENTER EventType = iota
	WATER_EXIT
	ON_SLEEP
	ON_WAKE
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// WaterEnterEvent is sent when a floater goes from no submerged test point to at least one
type WaterEnterEvent struct {
	Floater   *buoyancy.Component
	Submerged int
	Total     int
}

func (e WaterEnterEvent) Type() EventType { return WATER_ENTER }

// WaterExitEvent is sent when the last submerged test point of a floater leaves the water
type WaterExitEvent struct {
	Floater *buoyancy.Component
}

func (e WaterExitEvent) Type() EventType { return WATER_EXIT }

// Sleep/Wake events
type SleepEvent struct {
	Body *actor.RigidBody
}

func (e SleepEvent) Type() EventType { return ON_SLEEP }

type WakeEvent struct {
	Body *actor.RigidBody
}

func (e WakeEvent) Type() EventType { return ON_WAKE }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Whether each floater had a submerged point at its last simulated tick
	wetStates map[*buoyancy.Component]bool

	sleepStates map[*actor.RigidBody]bool
}

func NewEvents() Events {
	return Events{
		listeners:   make(map[EventType][]EventListener),
		buffer:      make([]Event, 0, 64),
		wetStates:   make(map[*buoyancy.Component]bool),
		sleepStates: make(map[*actor.RigidBody]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		*e = NewEvents()
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordWaterline compares each simulated floater with its previous tick to detect Enter/Exit.
// Ticks that did not simulate (inert, kinematic, no test points) leave the state untouched.
func (e *Events) recordWaterline(ticks []*floaterTick) {
	if e.wetStates == nil {
		*e = NewEvents()
	}

	for _, tick := range ticks {
		if tick.result.Mode != buoyancy.ModeSimulated {
			continue
		}

		wet := tick.result.Submerged > 0
		wasWet := e.wetStates[tick.floater]
		e.wetStates[tick.floater] = wet

		if wet && !wasWet {
			e.buffer = append(e.buffer, WaterEnterEvent{
				Floater:   tick.floater,
				Submerged: tick.result.Submerged,
				Total:     tick.result.Total,
			})
		} else if !wet && wasWet {
			e.buffer = append(e.buffer, WaterExitEvent{Floater: tick.floater})
		}
	}
}

func (e *Events) processSleepEvents(bodies []*actor.RigidBody) {
	if e.sleepStates == nil {
		*e = NewEvents()
	}

	for _, body := range bodies {
		trackedState, exists := e.sleepStates[body]
		if !exists {
			e.sleepStates[body] = body.IsSleeping
			continue
		}

		if !trackedState && body.IsSleeping {
			e.buffer = append(e.buffer, SleepEvent{Body: body})
			e.sleepStates[body] = true
		} else if trackedState && !body.IsSleeping {
			e.buffer = append(e.buffer, WakeEvent{Body: body})
			e.sleepStates[body] = false
		}
	}
}

func (e *Events) forget(floater *buoyancy.Component) {
	delete(e.wetStates, floater)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
