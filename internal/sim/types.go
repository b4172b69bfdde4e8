package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rcsaid/internal/deltav"
	"github.com/san-kum/rcsaid/internal/vessel"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Vec3 reads the first three components, padding with zeros.
func (s State) Vec3() mgl64.Vec3 {
	var v mgl64.Vec3
	copy(v[:], s)
	return v
}

type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

// Vehicle is a System whose state is its angular velocity and which carries
// the thrust contributors the estimator reads.
type Vehicle interface {
	System
	// Snapshot fires the thrusters for command u and returns what this tick's
	// aggregation reads.
	Snapshot(u Control) vessel.Snapshot
	// Consume draws propellant for the thrusters fired by the last Snapshot.
	Consume(dt float64)
	DragCoefficient() float64
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

type Controller interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Reporter is a Metric that publishes more than one reading per tick.
type Reporter interface {
	Report(readings map[string]float64)
}

type Observer interface {
	OnTick(s Sample)
}

// Sample is the telemetry of one tick.
type Sample struct {
	Step            int
	Time            float64
	Dt              float64
	AngularVelocity mgl64.Vec3
	Control         Control
	Estimate        deltav.Estimate
	DragCoefficient float64
	Readings        map[string]float64
}

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.02,
		Duration:      30.0,
		ValidateState: true,
	}
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	Final      deltav.Estimate
	StepsTaken int
	Errors     []error
}
