package buoyancy

import (
	"log"
	"os"

	"github.com/akmonengine/flotsam/constraint"
	"github.com/akmonengine/flotsam/wave"
)

// Component makes one body float. Configure it, Initialize it once against a scene,
// then Tick it every simulation step.
type Component struct {
	Body   Body
	Config Config

	sampler wave.Sampler
	factory ConstraintFactory
	debug   DebugDrawer
	logger  *log.Logger

	gravity GravityProvider
	state   Derived
	upright constraint.Constraint

	initialized bool
	destroyed   bool

	// test point indexes already reported with a non-positive density
	warnedDensity map[int]bool
}

type Option func(*Component)

// WithSampler binds a wave sampler explicitly, skipping scene discovery
func WithSampler(sampler wave.Sampler) Option {
	return func(c *Component) {
		c.sampler = sampler
	}
}

// WithConstraintFactory overrides the scene as the stay-upright joint factory
func WithConstraintFactory(factory ConstraintFactory) Option {
	return func(c *Component) {
		c.factory = factory
	}
}

func WithDebugDrawer(debug DebugDrawer) Option {
	return func(c *Component) {
		c.debug = debug
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Component) {
		c.logger = logger
	}
}

func New(body Body, cfg Config, opts ...Option) *Component {
	c := &Component{
		Body:          body,
		Config:        cfg,
		logger:        log.New(os.Stderr, "buoyancy: ", log.LstdFlags),
		warnedDensity: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Initialize binds the wave sampler, builds the optional stay-upright joint and
// freezes the derived state. Problems are logged and never fatal: without a sampler
// the component stays inert, without a joint it floats without righting spring.
func (c *Component) Initialize(scene Scene) error {
	if c.initialized {
		return ErrAlreadyInitialized
	}
	c.initialized = true
	c.gravity = scene

	if c.sampler == nil && scene != nil {
		if sampler, ok := scene.FindWaveSampler(); ok {
			c.sampler = sampler
		}
	}
	if c.sampler == nil {
		c.logger.Printf("no wave sampler found, component is inert")
	}

	if c.Config.EnableStayUprightConstraint {
		c.setupUpright(scene)
	}

	if c.Config.TestPointRadius < 0 {
		c.Config.TestPointRadius = -c.Config.TestPointRadius
	}
	c.state = Derive(&c.Config, c.Body, c.gravityZ())

	if err := c.Config.Validate(); err != nil {
		c.logger.Printf("invalid configuration: %v", err)
	}

	return nil
}

func (c *Component) setupUpright(scene Scene) {
	factory := c.factory
	if factory == nil {
		factory, _ = scene.(ConstraintFactory)
	}
	if factory == nil {
		c.logger.Printf("stay upright constraint: %v", ErrNoConstraintFactory)
		return
	}

	settings := constraint.UprightSettings(c.Config.StayUprightStiffness, c.Config.StayUprightDamping)
	upright, err := factory.CreateUprightConstraint(c.Body, c.Body.WorldTransform().Position, settings)
	if err != nil {
		c.logger.Printf("stay upright constraint: %v", err)
		return
	}
	c.upright = upright
}

// Tick runs one buoyancy step. dt is the host step and is not needed by the force model.
func (c *Component) Tick(dt float64) Result {
	if c.destroyed {
		return Result{Mode: ModeDestroyed}
	}
	if !c.initialized {
		return Result{Mode: ModeInert}
	}

	return Evaluate(c.Body, &c.Config, c.state, Env{
		Sampler:          c.sampler,
		GravityZ:         c.gravityZ(),
		Debug:            c.debug,
		OnInvalidDensity: c.warnDensity,
	})
}

// Rebind replaces the wave sampler, a nil sampler makes the component inert
func (c *Component) Rebind(sampler wave.Sampler) {
	c.sampler = sampler
}

// Destroy stops the component, later ticks make no body calls
func (c *Component) Destroy() {
	c.destroyed = true
}

func (c *Component) Sampler() wave.Sampler {
	return c.sampler
}

// Upright returns the stay-upright joint, nil when disabled or failed
func (c *Component) Upright() constraint.Constraint {
	return c.upright
}

func (c *Component) State() Derived {
	return c.state
}

func (c *Component) Initialized() bool {
	return c.initialized
}

func (c *Component) Destroyed() bool {
	return c.destroyed
}

func (c *Component) gravityZ() float64 {
	if c.gravity == nil {
		return 0
	}

	return c.gravity.GravityZ()
}

func (c *Component) warnDensity(index int, density float64) {
	if c.warnedDensity[index] {
		return
	}
	c.warnedDensity[index] = true

	c.logger.Printf("test point %d: density %v: %v, force skipped", index, density, ErrNonPositiveDensity)
}
