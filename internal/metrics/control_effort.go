package metrics

import (
	"math"

	"github.com/san-kum/rcsaid/internal/sim"
)

// ControlEffort is the mean summed absolute attitude command per tick.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(s sim.Sample) {
	for _, val := range s.Control {
		c.sum += math.Abs(val)
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// PropellantUsed is how much propellant mass the run has burned so far.
type PropellantUsed struct {
	name    string
	initial float64
	current float64
	seen    bool
}

func NewPropellantUsed() *PropellantUsed {
	return &PropellantUsed{name: "propellant_used"}
}

func (p *PropellantUsed) Name() string { return p.name }

func (p *PropellantUsed) Observe(s sim.Sample) {
	if !p.seen {
		p.initial = s.Estimate.ResourceMass
		p.seen = true
	}
	p.current = s.Estimate.ResourceMass
}

func (p *PropellantUsed) Value() float64 {
	return math.Max(0, p.initial-p.current)
}

func (p *PropellantUsed) Reset() {
	p.initial = 0
	p.current = 0
	p.seen = false
}
