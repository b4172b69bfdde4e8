package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rcsaid/internal/config"
	"github.com/san-kum/rcsaid/internal/control"
	"github.com/san-kum/rcsaid/internal/deltav"
	"github.com/san-kum/rcsaid/internal/integrators"
	"github.com/san-kum/rcsaid/internal/metrics"
	"github.com/san-kum/rcsaid/internal/sim"
)

var (
	ErrUnknownIntegrator = errors.New("unknown integrator")
	ErrUnknownController = errors.New("unknown controller")
	ErrUnknownMode       = errors.New("unknown mode")
)

type Registry struct {
	integrators map[string]func() sim.Integrator
	controllers map[string]func(map[string]float64) sim.Controller
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() sim.Integrator),
		controllers: make(map[string]func(map[string]float64) sim.Controller),
	}

	r.integrators["euler"] = func() sim.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() sim.Integrator { return integrators.NewRK4() }

	r.controllers["none"] = func(params map[string]float64) sim.Controller {
		dim := int(params["dim"])
		if dim == 0 {
			dim = 3
		}
		return control.NewNone(dim)
	}
	r.controllers["manual"] = func(params map[string]float64) sim.Controller {
		return control.NewManual([]float64{params["cmd_x"], params["cmd_y"], params["cmd_z"]})
	}
	r.controllers["pid"] = func(params map[string]float64) sim.Controller {
		target := mgl64.Vec3{params["target_x"], params["target_y"], params["target_z"]}
		return control.NewPID(params["kp"], params["ki"], params["kd"], target)
	}

	return r
}

func (r *Registry) GetIntegrator(name string) (sim.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

func (r *Registry) GetController(name string, params map[string]float64) (sim.Controller, error) {
	fn, ok := r.controllers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownController, name)
	}
	return fn(params), nil
}

func (r *Registry) GetMode(name string) (deltav.Mode, error) {
	m, err := deltav.ParseMode(name)
	if err != nil {
		return m, fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	return m, nil
}

func (r *Registry) ListIntegrators() []string { return sortedKeys(r.integrators) }

func (r *Registry) ListControllers() []string { return sortedKeys(r.controllers) }

func (r *Registry) ListModes() []string {
	names := make([]string, 0, 3)
	for _, m := range deltav.Modes() {
		names = append(names, m.String())
	}
	return names
}

// DefaultMetrics is the diagnostic set every run carries.
// inertia is the craft's principal moment of inertia.
func (r *Registry) DefaultMetrics(diag config.DiagnosticsConfig, inertia mgl64.Vec3) []sim.Metric {
	return []sim.Metric{
		metrics.NewDragAverage(diag.DragWindow),
		metrics.NewAngularAccelerationWindow(diag.SampleInterval, diag.HoldInterval),
		metrics.NewAngularMomentum(inertia),
		metrics.NewSanityRatio(),
		metrics.NewControlEffort(),
		metrics.NewPropellantUsed(),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
