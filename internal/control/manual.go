package control

import "github.com/san-kum/rcsaid/internal/sim"

// Manual holds a fixed attitude command until told otherwise.
type Manual struct {
	U sim.Control
}

func NewManual(u []float64) *Manual {
	m := &Manual{U: make(sim.Control, 3)}
	m.SetControl(u)
	return m
}

// SetControl replaces the held command. Components beyond three are ignored,
// each one is clamped to [-1, 1].
func (c *Manual) SetControl(u []float64) {
	for i := range c.U {
		c.U[i] = 0
		if i < len(u) {
			c.U[i] = clamp(u[i])
		}
	}
}

func (c *Manual) Compute(x sim.State, t float64) sim.Control {
	out := make(sim.Control, len(c.U))
	copy(out, c.U)
	return out
}
