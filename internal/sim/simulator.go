package sim

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/rcsaid/internal/deltav"
)

type Simulator struct {
	vehicle    Vehicle
	integrator Integrator
	controller Controller
	estimator  *deltav.Estimator
	metrics    []Metric
	observers  []Observer
}

func New(vehicle Vehicle, integrator Integrator, controller Controller, estimator *deltav.Estimator) *Simulator {
	return &Simulator{
		vehicle:    vehicle,
		integrator: integrator,
		controller: controller,
		estimator:  estimator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Estimator() *deltav.Estimator { return s.estimator }

// MetricNames lists the readings a Sample carries, sorted.
func (s *Simulator) MetricNames() []string {
	readings := make(map[string]float64)
	for _, m := range s.metrics {
		readings[m.Name()] = 0
		if r, ok := m.(Reporter); ok {
			r.Report(readings)
		}
	}
	names := make([]string, 0, len(readings))
	for name := range readings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metric returns the metric registered under name.
func (s *Simulator) Metric(name string) (Metric, bool) {
	for _, m := range s.metrics {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// ResetMetric resets one metric mid-run and reports whether it exists.
func (s *Simulator) ResetMetric(name string) bool {
	m, ok := s.Metric(name)
	if ok {
		m.Reset()
	}
	return ok
}

func (s *Simulator) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Samples: make([]Sample, 0, steps),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	s.Reset()

	x := x0.Clone()
	t := 0.0

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		newX, sample := s.Tick(i, x, t, cfg.Dt)
		result.Samples = append(result.Samples, sample)

		if cfg.ValidateState && !newX.IsValid() {
			err := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)", Err: ErrInvalidState}
			result.Errors = append(result.Errors, err)
			break
		}

		x = newX
		t += cfg.Dt
		result.StepsTaken++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = s.estimator.Latest()

	return result, nil
}

// Tick runs one fixed step from state x at time t and returns the next state
// with the tick's telemetry.
func (s *Simulator) Tick(step int, x State, t, dt float64) (State, Sample) {
	u := s.controller.Compute(x, t)

	snap := s.vehicle.Snapshot(u)
	est := s.estimator.Update(snap)

	sample := Sample{
		Step:            step,
		Time:            t,
		Dt:              dt,
		AngularVelocity: x.Vec3(),
		Control:         u,
		Estimate:        est,
		DragCoefficient: s.vehicle.DragCoefficient(),
		Readings:        make(map[string]float64, len(s.metrics)),
	}

	for _, m := range s.metrics {
		m.Observe(sample)
		sample.Readings[m.Name()] = m.Value()
		if r, ok := m.(Reporter); ok {
			r.Report(sample.Readings)
		}
	}
	for _, obs := range s.observers {
		obs.OnTick(sample)
	}

	next := s.integrator.Step(s.vehicle, x, u, t, dt)
	s.vehicle.Consume(dt)

	return next, sample
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if len(x0) != s.vehicle.StateDim() {
		return fmt.Errorf("%w: state has %d components, vehicle wants %d", ErrDimensionMismatch, len(x0), s.vehicle.StateDim())
	}
	return nil
}

// RunWithCallback streams samples until the duration elapses, the context is
// done, or callback returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(Sample) bool) error {
	if err := s.validate(x0, cfg); err != nil {
		return err
	}

	s.Reset()

	x := x0.Clone()
	t := 0.0

	for i := 0; t < cfg.Duration; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var sample Sample
		x, sample = s.Tick(i, x, t, cfg.Dt)

		if !callback(sample) {
			return nil
		}

		t += cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			return SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)", Err: ErrInvalidState}
		}
	}

	return nil
}
