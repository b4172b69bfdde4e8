package metrics

import (
	"math"

	"github.com/san-kum/rcsaid/internal/sim"
)

const (
	// SampleInterval is how much time accumulates before the derivative is
	// re-evaluated.
	SampleInterval = 0.1

	// HoldInterval is how long the peak is held before it drops to zero.
	HoldInterval = 10.0
)

// PeakHold differentiates a sampled magnitude and keeps the largest absolute
// derivative seen in the current hold interval. Both timers advance every
// step.
type PeakHold struct {
	sampleInterval float64
	holdInterval   float64

	last      float64
	shortTime float64
	longTime  float64
	rate      float64
	peak      float64
}

func NewPeakHold(sampleInterval, holdInterval float64) *PeakHold {
	if sampleInterval <= 0 {
		sampleInterval = SampleInterval
	}
	if holdInterval <= 0 {
		holdInterval = HoldInterval
	}
	return &PeakHold{sampleInterval: sampleInterval, holdInterval: holdInterval}
}

// Step feeds the magnitude observed after dt has elapsed. It reports whether
// the derivative was re-evaluated and whether the peak was dropped.
func (p *PeakHold) Step(magnitude, dt float64) (sampled, dropped bool) {
	p.shortTime += dt
	if p.shortTime > p.sampleInterval {
		p.rate = (magnitude - p.last) / p.shortTime
		p.peak = math.Max(p.peak, math.Abs(p.rate))
		p.last = magnitude
		p.shortTime = 0
		sampled = true
	}

	p.longTime += dt
	if p.longTime > p.holdInterval {
		p.peak = 0
		p.longTime = 0
		dropped = true
	}
	return sampled, dropped
}

func (p *PeakHold) Rate() float64 { return p.rate }
func (p *PeakHold) Peak() float64 { return p.peak }
func (p *PeakHold) Last() float64 { return p.last }

func (p *PeakHold) Reset() {
	*p = PeakHold{sampleInterval: p.sampleInterval, holdInterval: p.holdInterval}
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// AngularAcceleration estimates angular acceleration from the magnitude of
// the angular velocity, with a peak-hold readout.
type AngularAcceleration struct {
	name  string
	hold  *PeakHold
	omega float64
}

func NewAngularAcceleration() *AngularAcceleration {
	return NewAngularAccelerationWindow(SampleInterval, HoldInterval)
}

func NewAngularAccelerationWindow(sampleInterval, holdInterval float64) *AngularAcceleration {
	return &AngularAcceleration{
		name: "peak_acc",
		hold: NewPeakHold(sampleInterval, holdInterval),
	}
}

func (a *AngularAcceleration) Name() string { return a.name }

func (a *AngularAcceleration) Observe(s sim.Sample) {
	a.omega = s.AngularVelocity.Len()
	a.hold.Step(a.omega, s.Dt)
}

func (a *AngularAcceleration) Value() float64 { return a.hold.Peak() }

func (a *AngularAcceleration) Report(readings map[string]float64) {
	readings["acc"] = a.hold.Rate()
	readings["angvel"] = a.omega
}

func (a *AngularAcceleration) Reset() {
	a.hold.Reset()
	a.omega = 0
}
