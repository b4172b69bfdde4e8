package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/rcsaid/internal/deltav"
	"github.com/san-kum/rcsaid/internal/vessel"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt             = 0.02
	DefaultDuration       = 30.0
	DefaultSampleInterval = 0.1
	DefaultHoldInterval   = 10.0
	DefaultDragWindow     = 1000
	DefaultKp             = 2.0
	DefaultKi             = 0.0
	DefaultKd             = 0.05
)

var ErrInvalidConfig = errors.New("config: invalid scenario")

type Config struct {
	Name             string            `yaml:"name"`
	Mode             string            `yaml:"mode"`
	Integrator       string            `yaml:"integrator"`
	Controller       string            `yaml:"controller"`
	Dt               float64           `yaml:"dt"`
	Duration         float64           `yaml:"duration"`
	Seed             int64             `yaml:"seed"`
	Craft            CraftConfig       `yaml:"craft"`
	Resources        []ResourceConfig  `yaml:"resources"`
	Thrusters        []ThrusterConfig  `yaml:"thrusters"`
	ControllerParams ControllerConfig  `yaml:"controller_params"`
	Diagnostics      DiagnosticsConfig `yaml:"diagnostics"`
}

type CraftConfig struct {
	DryMass         float64    `yaml:"dry_mass"`
	Inertia         [3]float64 `yaml:"inertia"`
	Damping         float64    `yaml:"damping"`
	Translate       [3]float64 `yaml:"translate"`
	AngularVelocity [3]float64 `yaml:"angular_velocity"`
	Drag            DragConfig `yaml:"drag"`
}

type DragConfig struct {
	Base   float64 `yaml:"base"`
	Jitter float64 `yaml:"jitter"`
}

type ResourceConfig struct {
	Name string  `yaml:"name"`
	Mass float64 `yaml:"mass"`
	Flow string  `yaml:"flow"`
}

// ThrusterConfig is one RCS block. Isp holds [pressure, isp] keys; Nozzles
// hold exhaust directions.
type ThrusterConfig struct {
	Name     string       `yaml:"name"`
	Resource string       `yaml:"resource"`
	Position [3]float64   `yaml:"position"`
	Thrust   float64      `yaml:"thrust"`
	Isp      [][2]float64 `yaml:"isp"`
	Nozzles  [][3]float64 `yaml:"nozzles"`
	Disabled bool         `yaml:"disabled"`
}

type ControllerConfig struct {
	Kp      float64    `yaml:"kp"`
	Ki      float64    `yaml:"ki"`
	Kd      float64    `yaml:"kd"`
	Target  [3]float64 `yaml:"target"`
	Command [3]float64 `yaml:"command"`
}

type DiagnosticsConfig struct {
	SampleInterval float64 `yaml:"sample_interval"`
	HoldInterval   float64 `yaml:"hold_interval"`
	DragWindow     int     `yaml:"drag_window"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "custom",
		Mode:       "rcs",
		Integrator: "rk4",
		Controller: "pid",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Craft: CraftConfig{
			DryMass: 1.0,
			Inertia: [3]float64{1, 1, 1},
		},
		ControllerParams: ControllerConfig{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
		},
		Diagnostics: DiagnosticsConfig{
			SampleInterval: DefaultSampleInterval,
			HoldInterval:   DefaultHoldInterval,
			DragWindow:     DefaultDragWindow,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write renders cfg as a scenario file.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, c.Duration)
	}
	if c.Craft.DryMass < 0 {
		return fmt.Errorf("%w: dry mass must not be negative", ErrInvalidConfig)
	}
	if _, err := deltav.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for _, r := range c.Resources {
		if r.Name == "" {
			return fmt.Errorf("%w: resource without a name", ErrInvalidConfig)
		}
		if _, err := vessel.ParseFlowMode(r.Flow); err != nil {
			return fmt.Errorf("%w: resource %s: %v", ErrInvalidConfig, r.Name, err)
		}
	}
	for i, t := range c.Thrusters {
		if t.Thrust < 0 {
			return fmt.Errorf("%w: thruster %d: negative thrust", ErrInvalidConfig, i)
		}
		if len(t.Nozzles) == 0 {
			return fmt.Errorf("%w: thruster %d: no nozzles", ErrInvalidConfig, i)
		}
	}
	return nil
}

// Clone is a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Resources = append([]ResourceConfig(nil), c.Resources...)
	out.Thrusters = make([]ThrusterConfig, len(c.Thrusters))
	for i, t := range c.Thrusters {
		t.Isp = append([][2]float64(nil), t.Isp...)
		t.Nozzles = append([][3]float64(nil), t.Nozzles...)
		out.Thrusters[i] = t
	}
	return &out
}

func (c *Config) ParsedMode() deltav.Mode {
	m, _ := deltav.ParseMode(c.Mode)
	return m
}

func (c *Config) GetInitState() []float64 {
	w := c.Craft.AngularVelocity
	return []float64{w[0], w[1], w[2]}
}

func (c *Config) GetControllerParams() map[string]float64 {
	p := c.ControllerParams
	return map[string]float64{
		"dim":      3,
		"kp":       p.Kp,
		"ki":       p.Ki,
		"kd":       p.Kd,
		"target_x": p.Target[0],
		"target_y": p.Target[1],
		"target_z": p.Target[2],
		"cmd_x":    p.Command[0],
		"cmd_y":    p.Command[1],
		"cmd_z":    p.Command[2],
	}
}

// BuildResources builds the resource table the scenario starts with.
func (c *Config) BuildResources() *vessel.Resources {
	rs := vessel.NewResources()
	for _, r := range c.Resources {
		flow, _ := vessel.ParseFlowMode(r.Flow)
		rs.Set(vessel.Resource{Name: r.Name, Mass: r.Mass, Flow: flow})
	}
	return rs
}
