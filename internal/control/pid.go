package control

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rcsaid/internal/sim"
)

// PID drives each axis of the angular velocity toward Target. The output per
// axis is clamped to [-1, 1] and the integral does not wind up past it.
type PID struct {
	Kp     float64
	Ki     float64
	Kd     float64
	Target mgl64.Vec3

	integral mgl64.Vec3
	prevErr  mgl64.Vec3
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd float64, target mgl64.Vec3) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		first:  true,
	}
}

func (p *PID) Compute(x sim.State, t float64) sim.Control {
	err := p.Target.Sub(x.Vec3())

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.output(err.Mul(p.Kp))
	}

	dt := t - p.prevT
	if dt <= 0 {
		return p.output(err.Mul(p.Kp))
	}

	integral := p.integral.Add(err.Mul(dt))
	derivative := err.Sub(p.prevErr).Mul(1 / dt)
	raw := err.Mul(p.Kp).Add(integral.Mul(p.Ki)).Add(derivative.Mul(p.Kd))

	for i := 0; i < 3; i++ {
		if math.Abs(raw[i]) <= 1 || math.Signbit(raw[i]) != math.Signbit(err[i]) {
			p.integral[i] = integral[i]
		}
	}

	p.prevErr = err
	p.prevT = t

	return p.output(raw)
}

func (p *PID) output(v mgl64.Vec3) sim.Control {
	return sim.Control{clamp(v[0]), clamp(v[1]), clamp(v[2])}
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = mgl64.Vec3{}
	p.prevErr = mgl64.Vec3{}
	p.first = true
}

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp": p.Kp,
		"Ki": p.Ki,
		"Kd": p.Kd,
	}
}

// SetParam adjusts a PID gain
func (p *PID) SetParam(name string, value float64) error {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	default:
		return fmt.Errorf("unknown pid parameter: %s", name)
	}
	return nil
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
