package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/rcsaid/internal/config"
	"github.com/san-kum/rcsaid/internal/deltav"
	"github.com/san-kum/rcsaid/internal/flight"
	"github.com/san-kum/rcsaid/internal/sim"
)

// Experiment is one scenario wired up and ready to run.
type Experiment struct {
	cfg        *config.Config
	craft      *flight.Craft
	controller sim.Controller
	mode       deltav.Mode
	simulator  *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup resolves every named part of the scenario and builds the simulator.
func (e *Experiment) Setup(reg *Registry, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	mode, err := reg.GetMode(e.cfg.Mode)
	if err != nil {
		return err
	}
	integrator, err := reg.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}
	controller, err := reg.GetController(e.cfg.Controller, e.cfg.GetControllerParams())
	if err != nil {
		return err
	}
	craft, err := flight.FromConfig(e.cfg)
	if err != nil {
		return err
	}

	est := deltav.NewEstimator(mode, logger.With("scenario", e.cfg.Name))
	e.craft = craft
	e.controller = controller
	e.mode = mode
	e.simulator = sim.New(craft, integrator, controller, est)
	for _, m := range reg.DefaultMetrics(e.cfg.Diagnostics, craft.Inertia) {
		e.simulator.AddMetric(m)
	}

	logger.Debug("experiment ready",
		"scenario", e.cfg.Name,
		"mode", mode.String(),
		"integrator", e.cfg.Integrator,
		"controller", e.cfg.Controller,
		"thrusters", len(craft.Thrusters()))
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.InitState(), e.SimConfig())
}

// Estimate is the static estimate at t=0: the craft's contributor set under
// the controller's first command. Nothing is published or integrated.
func (e *Experiment) Estimate() (deltav.Estimate, error) {
	if e.simulator == nil {
		return deltav.Estimate{}, fmt.Errorf("experiment not setup")
	}
	u := e.controller.Compute(e.InitState(), 0)
	return deltav.Compute(e.mode, e.craft.Snapshot(u)), nil
}

func (e *Experiment) InitState() sim.State {
	return sim.State(e.cfg.GetInitState())
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		Seed:          e.cfg.Seed,
		ValidateState: true,
	}
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Craft() *flight.Craft { return e.craft }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
