package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/rcsaid/internal/config"
	"github.com/san-kum/rcsaid/internal/deltav"
	"github.com/san-kum/rcsaid/internal/experiment"
	"github.com/san-kum/rcsaid/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrUnknownParam = errors.New("unknown sweep parameter")

// Params lists what a sweep can vary.
var Params = []string{"propellant", "dry_mass", "thrust"}

// Scenario is a scripted batch of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset or a scenario file and overrides what it
// names. Zero values keep the base.
type ScenarioStep struct {
	Preset     string  `yaml:"preset"`
	File       string  `yaml:"file"`
	Mode       string  `yaml:"mode"`
	Integrator string  `yaml:"integrator"`
	Controller string  `yaml:"controller"`
	Duration   float64 `yaml:"duration"`
	Dt         float64 `yaml:"dt"`
	Seed       int64   `yaml:"seed"`
	SaveAs     string  `yaml:"save_as"`
}

type StepResult struct {
	Name   string
	SaveAs string
	Config *config.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

func (s ScenarioStep) resolve() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.File != "":
		c, err := config.Load(s.File)
		if err != nil {
			return nil, err
		}
		cfg = c
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if s.Mode != "" {
		cfg.Mode = s.Mode
	}
	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if s.Controller != "" {
		cfg.Controller = s.Controller
	}
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	return cfg, nil
}

// RunScenario executes all steps in a scenario
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("batch step", "step", i+1, "of", len(scenario.Steps), "scenario", cfg.Name)

		exp := experiment.New(cfg)
		if err := exp.Setup(registry, logger); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{
			Name:   cfg.Name,
			SaveAs: step.SaveAs,
			Config: cfg,
			Result: result,
		})
	}

	return results, nil
}

// ParameterSweep varies one scenario parameter over [ParamMin, ParamMax].
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult is the static estimate at one parameter value.
type SweepResult struct {
	ParamValue float64
	Estimate   deltav.Estimate
}

// Apply sets a sweep parameter on cfg. propellant sets every resource's mass,
// thrust every thruster's max thrust.
func Apply(cfg *config.Config, param string, value float64) error {
	switch param {
	case "propellant":
		for i := range cfg.Resources {
			cfg.Resources[i].Mass = value
		}
	case "dry_mass":
		cfg.Craft.DryMass = value
	case "thrust":
		for i := range cfg.Thrusters {
			cfg.Thrusters[i].Thrust = value
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, param)
	}
	return nil
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, logger *slog.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := sweep.Base.Clone()
		if err := Apply(cfg, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(registry, logger); err != nil {
			return nil, err
		}
		est, err := exp.Estimate()
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{ParamValue: paramVal, Estimate: est})
		logger.Debug("sweep", "step", i+1, "of", sweep.NumSteps, sweep.ParamName, paramVal, "dv", est.DeltaV)
	}

	return results, nil
}

// MonteCarloConfig perturbs the initial spin of a base scenario. Trials run
// concurrently, at most Workers at once (0 means one per CPU).
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
	Workers      int
}

// MonteCarloResult is how one perturbed run ended.
type MonteCarloResult struct {
	TrialID        int
	InitSpin       [3]float64
	FinalSpin      float64
	PropellantUsed float64
	Final          deltav.Estimate
	Stable         bool
}

// RunMonteCarlo draws every trial's perturbation up front, then runs the
// trials as an ensemble. Results are in trial order and depend only on Seed.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry, logger *slog.Logger) ([]MonteCarloResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	trials := make([]*config.Config, cfg.NumTrials)
	for trial := range trials {
		trialCfg := cfg.Base.Clone()
		for i := range trialCfg.Craft.AngularVelocity {
			trialCfg.Craft.AngularVelocity[i] += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
		}
		trialCfg.Seed = cfg.Base.Seed + int64(trial)
		trials[trial] = trialCfg
	}

	runs, err := experiment.NewEnsemble(registry, logger, cfg.Workers).Run(ctx, trials)
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial, result := range runs {
		// Stable: the run finished and the spin did not grow.
		var final float64
		if n := len(result.Samples); n > 0 {
			final = result.Samples[n-1].AngularVelocity.Len()
		}
		initSpin := trials[trial].Craft.AngularVelocity
		start := sim.State(initSpin[:]).Norm()
		stable := len(result.Errors) == 0 && final <= start

		results = append(results, MonteCarloResult{
			TrialID:        trial,
			InitSpin:       initSpin,
			FinalSpin:      final,
			PropellantUsed: result.Metrics["propellant_used"],
			Final:          result.Final,
			Stable:         stable,
		})
	}
	logger.Info("monte carlo", "trials", cfg.NumTrials, "workers", cfg.Workers)

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
