package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rcsaid/internal/deltav"
	"github.com/san-kum/rcsaid/internal/vessel"
)

// testVehicle decays its spin and fires a single nozzle along -x whenever
// the command's first axis is positive.
type testVehicle struct {
	thruster *vessel.Thruster
	tank     *vessel.Resources
	events   *[]string
	blowUp   bool
}

func newTestVehicle(events *[]string) *testVehicle {
	return &testVehicle{
		thruster: &vessel.Thruster{
			ResourceName: "MonoPropellant",
			Curve:        vessel.ConstantCurve(200),
			MaxThrust:    1,
			Nozzles:      []vessel.Nozzle{{Direction: mgl64.Vec3{-1, 0, 0}}},
		},
		tank:   vessel.NewResources(vessel.Resource{Name: "MonoPropellant", Mass: 1, Flow: vessel.FlowAllVessel}),
		events: events,
	}
}

func (v *testVehicle) log(e string) {
	if v.events != nil {
		*v.events = append(*v.events, e)
	}
}

func (v *testVehicle) StateDim() int   { return 3 }
func (v *testVehicle) ControlDim() int { return 3 }

func (v *testVehicle) Derive(x State, u Control, t float64) State {
	v.log("derive")
	if v.blowUp {
		return State{math.Inf(1), 0, 0}
	}
	return State{-x[0], -x[1], -x[2]}
}

func (v *testVehicle) Snapshot(u Control) vessel.Snapshot {
	v.log("snapshot")
	v.thruster.Nozzles[0].Throttle = 0
	if len(u) > 0 && u[0] > 0 {
		v.thruster.Nozzles[0].Throttle = 1
	}
	return vessel.NewSnapshot([]vessel.Contributor{v.thruster}, 2+v.tank.Total(), v.tank)
}

func (v *testVehicle) Consume(dt float64) {
	v.log("consume")
	if v.thruster.Enabled() {
		v.tank.Draw("MonoPropellant", 0.01)
	}
}

func (v *testVehicle) DragCoefficient() float64 { return 0.3 }

type testIntegrator struct{}

func (testIntegrator) Step(dyn System, x State, u Control, t float64, dt float64) State {
	dx := dyn.Derive(x, u, t)
	next := make(State, len(x))
	for i := range x {
		next[i] = x[i] + dt*dx[i]
	}
	return next
}

// alternating fires on odd steps only.
type alternating struct {
	dt     float64
	events *[]string
}

func (a alternating) Compute(x State, t float64) Control {
	if a.events != nil {
		*a.events = append(*a.events, "control")
	}
	if int(math.Round(t/a.dt))%2 == 1 {
		return Control{1, 0, 0}
	}
	return Control{0, 0, 0}
}

type testMetric struct {
	count  int
	events *[]string
}

func (m *testMetric) Name() string { return "count" }
func (m *testMetric) Observe(s Sample) {
	m.count++
	if m.events != nil {
		*m.events = append(*m.events, "metric")
	}
}
func (m *testMetric) Value() float64 { return float64(m.count) }
func (m *testMetric) Reset()         { m.count = 0 }
func (m *testMetric) Report(r map[string]float64) {
	r["count_x2"] = float64(2 * m.count)
}

type recorder struct {
	samples []Sample
	events  *[]string
}

func (r *recorder) OnTick(s Sample) {
	r.samples = append(r.samples, s)
	if r.events != nil {
		*r.events = append(*r.events, "observer")
	}
}

func newTestSim(events *[]string) (*Simulator, *testVehicle) {
	v := newTestVehicle(events)
	est := deltav.NewEstimator(deltav.ModeRCS, nil)
	return New(v, testIntegrator{}, alternating{dt: 0.1, events: events}, est), v
}

func TestSimulatorRun(t *testing.T) {
	s, _ := newTestSim(nil)

	result, err := s.Run(context.Background(), State{1, 0, 0}, Config{Dt: 0.1, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 10 || len(result.Samples) != 10 {
		t.Errorf("expected 10 steps and samples, got %d/%d", result.StepsTaken, len(result.Samples))
	}

	// Euler on dx = -x: (1 - dt)^n
	last := result.Samples[9].AngularVelocity[0]
	if math.Abs(last-math.Pow(0.9, 9)) > 1e-12 {
		t.Errorf("expected wx %.6f at the last sample, got %.6f", math.Pow(0.9, 9), last)
	}
	if result.Final != s.Estimator().Latest() {
		t.Error("Final should be the last published estimate")
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s, _ := newTestSim(nil)

	tests := []struct {
		name string
		x0   State
		cfg  Config
		want error
	}{
		{"zero dt", State{1, 0, 0}, Config{Dt: 0, Duration: 1.0}, ErrInvalidConfig},
		{"negative dt", State{1, 0, 0}, Config{Dt: -0.1, Duration: 1.0}, ErrInvalidConfig},
		{"zero duration", State{1, 0, 0}, Config{Dt: 0.1, Duration: 0}, ErrInvalidConfig},
		{"negative duration", State{1, 0, 0}, Config{Dt: 0.1, Duration: -1.0}, ErrInvalidConfig},
		{"short state", State{1}, Config{Dt: 0.1, Duration: 1.0}, ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.x0, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSimulatorMetrics(t *testing.T) {
	s, _ := newTestSim(nil)
	metric := &testMetric{}
	s.AddMetric(metric)

	result, err := s.Run(context.Background(), State{1, 0, 0}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Metrics["count"] != 10 {
		t.Errorf("expected 10 observations, got %f", result.Metrics["count"])
	}
	if got := result.Samples[4].Readings["count_x2"]; got != 10 {
		t.Errorf("reporter reading at step 4: expected 10, got %f", got)
	}

	names := s.MetricNames()
	if len(names) != 2 || names[0] != "count" || names[1] != "count_x2" {
		t.Errorf("unexpected metric names %v", names)
	}

	// a second run starts from reset metrics
	result, _ = s.Run(context.Background(), State{1, 0, 0}, Config{Dt: 0.1, Duration: 0.5})
	if result.Metrics["count"] != 5 {
		t.Errorf("metrics should reset between runs, got %f", result.Metrics["count"])
	}
}

func TestSimulatorResetMetric(t *testing.T) {
	s, _ := newTestSim(nil)
	metric := &testMetric{}
	s.AddMetric(metric)

	x := State{1, 0, 0}
	for i := 0; i < 3; i++ {
		x, _ = s.Tick(i, x, float64(i)*0.1, 0.1)
	}
	if m, ok := s.Metric("count"); !ok || m.Value() != 3 {
		t.Fatalf("expected count 3 after three ticks, got %v (found %v)", metric.Value(), ok)
	}

	if !s.ResetMetric("count") {
		t.Fatal("count should be registered")
	}
	if metric.Value() != 0 {
		t.Errorf("expected count 0 after reset, got %f", metric.Value())
	}
	_, sample := s.Tick(3, x, 0.3, 0.1)
	if sample.Readings["count"] != 1 {
		t.Errorf("expected the window to restart at 1, got %f", sample.Readings["count"])
	}

	if s.ResetMetric("missing") {
		t.Error("unknown metric should report false")
	}
	if _, ok := s.Metric("missing"); ok {
		t.Error("unknown metric should not be found")
	}
}

func TestSimulatorTickOrder(t *testing.T) {
	var events []string
	s, _ := newTestSim(&events)
	s.AddMetric(&testMetric{events: &events})
	s.AddObserver(&recorder{events: &events})

	s.Tick(0, State{1, 0, 0}, 0, 0.1)

	want := []string{"control", "snapshot", "metric", "observer", "derive", "consume"}
	if len(events) != len(want) {
		t.Fatalf("expected events %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], events[i])
		}
	}
}

func TestSimulatorEstimateUsesSameTick(t *testing.T) {
	s, _ := newTestSim(nil)
	rec := &recorder{}
	s.AddObserver(rec)

	if _, err := s.Run(context.Background(), State{0, 0, 0}, Config{Dt: 0.1, Duration: 0.6}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, sample := range rec.samples {
		firing := sample.Step%2 == 1
		if got := sample.Estimate.Thrust > 0; got != firing {
			t.Errorf("step %d: thrust %f, firing %v", sample.Step, sample.Estimate.Thrust, firing)
		}
		if sample.DragCoefficient != 0.3 {
			t.Errorf("step %d: expected cd 0.3, got %f", sample.Step, sample.DragCoefficient)
		}
	}

	// propellant drawn on a tick shows up in the next tick's estimate
	if rec.samples[1].Estimate.ResourceMass != 1 {
		t.Errorf("step 1 should still see a full tank, got %f", rec.samples[1].Estimate.ResourceMass)
	}
	if math.Abs(rec.samples[2].Estimate.ResourceMass-0.99) > 1e-12 {
		t.Errorf("step 2 should see the step-1 burn, got %f", rec.samples[2].Estimate.ResourceMass)
	}
}

func TestSimulatorInvalidState(t *testing.T) {
	s, v := newTestSim(nil)
	v.blowUp = true

	result, err := s.Run(context.Background(), State{1, 0, 0}, Config{Dt: 0.1, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.StepsTaken != 0 || len(result.Errors) != 1 {
		t.Fatalf("expected stop on first tick, got %d steps, %d errors", result.StepsTaken, len(result.Errors))
	}
	if !errors.Is(result.Errors[0], ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", result.Errors[0])
	}
}

func TestSimulatorContextCancel(t *testing.T) {
	s, _ := newTestSim(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, State{1, 0, 0}, Config{Dt: 0.1, Duration: 1.0})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.StepsTaken != 0 {
		t.Error("cancelled run should return an empty partial result")
	}
}

func TestRunWithCallback(t *testing.T) {
	s, _ := newTestSim(nil)

	count := 0
	err := s.RunWithCallback(context.Background(), State{1, 0, 0}, Config{Dt: 0.1, Duration: 1.0}, func(Sample) bool {
		count++
		return count < 4
	})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if count != 4 {
		t.Errorf("expected early stop after 4 samples, got %d", count)
	}

	s2, v := newTestSim(nil)
	v.blowUp = true
	err = s2.RunWithCallback(context.Background(), State{1, 0, 0}, Config{Dt: 0.1, Duration: 1.0, ValidateState: true}, func(Sample) bool { return true })
	var se SimError
	if !errors.As(err, &se) || !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected SimError wrapping ErrInvalidState, got %v", err)
	}
}
