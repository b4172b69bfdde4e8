// Package flight is a scripted RCS craft: rigid rotation under thruster torque
// plus propellant draw, just enough to feed the estimator realistic
// contributor sets.
package flight

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rcsaid/internal/deltav"
	"github.com/san-kum/rcsaid/internal/sim"
	"github.com/san-kum/rcsaid/internal/vessel"
)

// Drag describes the noisy drag coefficient the craft reports.
type Drag struct {
	Base   float64
	Jitter float64
}

// Craft is a sim.Vehicle. Translate is the direction the pilot wants the
// vessel to accelerate in; zero means rotation only.
type Craft struct {
	DryMass   float64
	Inertia   mgl64.Vec3
	Damping   float64
	Translate mgl64.Vec3
	Drag      Drag

	thrusters []*vessel.Thruster
	resources *vessel.Resources
	rng       *rand.Rand
	lastCd    float64
}

func NewCraft(dryMass float64, inertia mgl64.Vec3, thrusters []*vessel.Thruster, resources *vessel.Resources, seed int64) *Craft {
	if resources == nil {
		resources = vessel.NewResources()
	}
	return &Craft{
		DryMass:   dryMass,
		Inertia:   inertia,
		thrusters: thrusters,
		resources: resources,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (c *Craft) StateDim() int   { return 3 }
func (c *Craft) ControlDim() int { return 3 }

func (c *Craft) Thrusters() []*vessel.Thruster { return c.thrusters }
func (c *Craft) Resources() *vessel.Resources  { return c.resources }

// Mass is dry mass plus every resource on board.
func (c *Craft) Mass() float64 {
	return c.DryMass + c.resources.Total()
}

// Throttle is how hard a nozzle fires for command u: how well its push lines
// up with Translate plus how well its torque lines up with the command,
// clamped to [0, 1]. A nozzle whose tank is empty does not fire.
func (c *Craft) Throttle(th *vessel.Thruster, dir mgl64.Vec3, u sim.Control) float64 {
	if th.Disabled {
		return 0
	}
	if m, ok := c.resources.Mass(th.ResourceName); !ok || m <= 0 {
		return 0
	}

	exhaust := vessel.Unit(dir)
	level := exhaust.Mul(-1).Dot(vessel.Unit(c.Translate))

	if len(u) >= 3 {
		torqueAxis := vessel.Unit(th.Position.Cross(exhaust.Mul(-1)))
		level += torqueAxis.Dot(mgl64.Vec3{u[0], u[1], u[2]})
	}

	return math.Max(0, math.Min(1, level))
}

// Snapshot sets every nozzle's throttle for command u.
func (c *Craft) Snapshot(u sim.Control) vessel.Snapshot {
	cs := make([]vessel.Contributor, len(c.thrusters))
	for i, th := range c.thrusters {
		for j := range th.Nozzles {
			th.Nozzles[j].Throttle = c.Throttle(th, th.Nozzles[j].Direction, u)
		}
		cs[i] = th
	}

	c.lastCd = c.sampleDrag()
	return vessel.NewSnapshot(cs, c.Mass(), c.resources)
}

// Derive is dω/dt = Σ(r × F) / I − damping·ω for the throttles command u
// produces. Axes with zero inertia do not rotate.
func (c *Craft) Derive(x sim.State, u sim.Control, t float64) sim.State {
	var torque mgl64.Vec3
	for _, th := range c.thrusters {
		for _, n := range th.Nozzles {
			level := c.Throttle(th, n.Direction, u)
			force := vessel.Unit(n.Direction).Mul(-th.MaxThrust * level)
			torque = torque.Add(th.Position.Cross(force))
		}
	}

	omega := x.Vec3()
	dx := make(sim.State, 3)
	for i := 0; i < 3; i++ {
		if c.Inertia[i] <= 0 {
			continue
		}
		dx[i] = torque[i]/c.Inertia[i] - c.Damping*omega[i]
	}
	return dx
}

// Consume draws the propellant the last Snapshot's throttles burn in dt:
// mass flow is thrust / (g0 · Isp).
func (c *Craft) Consume(dt float64) {
	for _, th := range c.thrusters {
		if !th.Enabled() {
			continue
		}
		isp := th.IspCurve().Evaluate(0)
		if isp <= 0 {
			continue
		}
		thrust := 0.0
		for _, v := range th.ThrustVectors() {
			thrust += v.Len()
		}
		c.resources.Draw(th.ResourceName, thrust/(deltav.G*isp)*dt)
	}
}

func (c *Craft) DragCoefficient() float64 { return c.lastCd }

func (c *Craft) sampleDrag() float64 {
	if c.Drag.Jitter == 0 {
		return c.Drag.Base
	}
	return c.Drag.Base * (1 + c.Drag.Jitter*(c.rng.Float64()-0.5))
}
