package main

import (
	"fmt"
	"image/color"

	"github.com/akmonengine/flotsam"
	"github.com/akmonengine/flotsam/actor"
	"github.com/akmonengine/flotsam/buoyancy"
	"github.com/akmonengine/flotsam/constraint"
	"github.com/akmonengine/flotsam/wave"
	"github.com/go-gl/mathgl/mgl64"
)

// SimpleDrawer counts the debug spheres drawn during a step
type SimpleDrawer struct {
	wet, dry int
}

func (d *SimpleDrawer) DrawSphere(center mgl64.Vec3, radius float64, c color.RGBA) {
	if c == buoyancy.ColorSubmerged {
		d.wet++
	} else {
		d.dry++
	}
}

func (d *SimpleDrawer) Reset() {
	d.wet, d.dry = 0, 0
}

type floatingBody struct {
	name    string
	body    *actor.RigidBody
	floater *buoyancy.Component
}

// SetupScene creates a storm ocean with a few crates, a boat and a buoy
func SetupScene(drawer *SimpleDrawer) (*flotsam.World, []floatingBody) {
	world := flotsam.NewWorld(mgl64.Vec3{0, 0, -9.81}, 4)
	world.Workers = 4
	world.AddSampler(wave.Storm())

	var bodies []floatingBody

	// Crates of varying wood
	for i, density := range []float64{400, 600, 900} {
		halfExtents := mgl64.Vec3{0.5, 0.5, 0.5}
		body := actor.NewRigidBody(
			actor.Transform{Position: mgl64.Vec3{float64(i) * 4, 0, 3}},
			&actor.Box{HalfExtents: halfExtents},
			actor.BodyTypeDynamic,
			density,
		)
		world.AddBody(body)

		cfg := buoyancy.DefaultConfig()
		cfg.MeshDensity = density
		cfg.TestPointRadius = 0.25
		cfg.TestPoints = buoyancy.BoxTestPoints(halfExtents)
		cfg.ClampMaxVelocity = true
		cfg.MaxUnderwaterVelocity = 8

		floater := buoyancy.New(body, cfg)
		if err := world.AddFloater(floater); err != nil {
			fmt.Printf("crate %d: %v\n", i, err)
			continue
		}
		bodies = append(bodies, floatingBody{fmt.Sprintf("crate %.0f", density), body, floater})
	}

	// Boat: a long hull with a heavier keel point, kept upright by a joint
	hull := mgl64.Vec3{3, 1, 0.5}
	boat := actor.NewRigidBody(
		actor.Transform{
			Position: mgl64.Vec3{0, 10, 1},
			Rotation: mgl64.QuatRotate(mgl64.DegToRad(20), mgl64.Vec3{1, 0, 0}),
		},
		&actor.Box{HalfExtents: hull},
		actor.BodyTypeDynamic,
		300,
	)
	world.AddBody(boat)

	boatCfg := buoyancy.DefaultConfig()
	boatCfg.MeshDensity = 300
	boatCfg.TestPointRadius = 0.5
	boatCfg.TestPoints = append(buoyancy.BoxTestPoints(hull), mgl64.Vec3{0, 0, -hull.Z()})
	boatCfg.PointDensityOverride = map[int]float64{8: 2000}
	boatCfg.EnableStayUprightConstraint = true
	boatCfg.StayUprightStiffness = 20
	boatCfg.StayUprightDamping = 4
	boatCfg.DrawDebugPoints = true

	boatFloater := buoyancy.New(boat, boatCfg, buoyancy.WithDebugDrawer(drawer))
	if err := world.AddFloater(boatFloater); err == nil {
		bodies = append(bodies, floatingBody{"boat", boat, boatFloater})
	}

	// Buoy: kinematic, rides the surface
	buoy := actor.NewRigidBody(
		actor.Transform{Position: mgl64.Vec3{-6, -6, 0}},
		&actor.Sphere{Radius: 0.4},
		actor.BodyTypeKinematic,
		100,
	)
	world.AddBody(buoy)
	buoyFloater := buoyancy.New(buoy, buoyancy.DefaultConfig())
	if err := world.AddFloater(buoyFloater); err == nil {
		bodies = append(bodies, floatingBody{"buoy", buoy, buoyFloater})
	}

	return world, bodies
}

func main() {
	drawer := &SimpleDrawer{}
	world, bodies := SetupScene(drawer)

	names := make(map[*buoyancy.Component]string, len(bodies))
	for _, fb := range bodies {
		names[fb.floater] = fb.name
	}
	world.Events.Subscribe(flotsam.WATER_ENTER, func(event flotsam.Event) {
		e := event.(flotsam.WaterEnterEvent)
		fmt.Printf("🌊 %s entered the water (%d/%d points)\n", names[e.Floater], e.Submerged, e.Total)
	})
	world.Events.Subscribe(flotsam.WATER_EXIT, func(event flotsam.Event) {
		e := event.(flotsam.WaterExitEvent)
		fmt.Printf("💨 %s left the water\n", names[e.Floater])
	})

	for _, fb := range bodies {
		if joint, ok := fb.floater.Upright().(*constraint.SixDOF); ok {
			fmt.Printf("⚓ %s upright joint, reference %v\n", fb.name, joint.Reference())
		}
	}

	const dt = 1.0 / 60.0
	for frame := range 60 * 20 {
		drawer.Reset()
		world.Step(dt)

		if frame%60 != 59 {
			continue
		}

		sampler, _ := world.FindWaveSampler()
		fmt.Printf("t=%2.0fs", float64(frame+1)*dt)
		for _, fb := range bodies {
			position := fb.body.Transform.Position
			draft := fb.body.Shape.GetAABB().Draft(sampler.HeightAt(position).Z())
			fmt.Printf("  %s z=%6.2f draft=%4.2f", fb.name, position.Z(), draft)
		}
		fmt.Printf("  boat points wet=%d dry=%d\n", drawer.wet, drawer.dry)
	}
}
