package config

import (
	"math"
	"sort"
)

// Presets build fresh scenarios so callers can mutate what they get back.
var Presets = map[string]func() *Config{
	"probe":  probe,
	"lander": lander,
	"mixed":  mixed,
	"tumble": tumble,
}

func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rcsQuad places four blocks around the z axis at radius r. Each block has
// fore, aft and two tangential nozzles.
func rcsQuad(resource string, r, thrust, ispVac, ispAtm float64) []ThrusterConfig {
	names := []string{"rcs-px", "rcs-py", "rcs-nx", "rcs-ny"}
	blocks := make([]ThrusterConfig, 4)
	for i := range blocks {
		a := float64(i) * math.Pi / 2
		cx, cy := math.Cos(a), math.Sin(a)
		tx, ty := -cy, cx
		blocks[i] = ThrusterConfig{
			Name:     names[i],
			Resource: resource,
			Position: [3]float64{round(r * cx), round(r * cy), 0},
			Thrust:   thrust,
			Isp:      [][2]float64{{0, ispVac}, {1, ispAtm}},
			Nozzles: [][3]float64{
				{0, 0, 1},
				{0, 0, -1},
				{round(tx), round(ty), 0},
				{round(-tx), round(-ty), 0},
			},
		}
	}
	return blocks
}

func round(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}

func probe() *Config {
	cfg := DefaultConfig()
	cfg.Name = "probe"
	cfg.Duration = 20
	cfg.Craft.DryMass = 0.8
	cfg.Craft.Inertia = [3]float64{0.4, 0.4, 0.3}
	cfg.Craft.AngularVelocity = [3]float64{0.2, -0.1, 0.3}
	cfg.Craft.Drag = DragConfig{Base: 0.2, Jitter: 0.05}
	cfg.Resources = []ResourceConfig{{Name: "MonoPropellant", Mass: 0.3, Flow: "all_vessel"}}
	cfg.Thrusters = rcsQuad("MonoPropellant", 0.6, 1.0, 240, 100)
	return cfg
}

func lander() *Config {
	cfg := DefaultConfig()
	cfg.Name = "lander"
	cfg.Controller = "manual"
	cfg.Duration = 15
	cfg.Craft.DryMass = 2.5
	cfg.Craft.Inertia = [3]float64{1.8, 1.8, 1.2}
	cfg.Craft.Damping = 0.05
	cfg.Craft.Translate = [3]float64{0, 0, 1}
	cfg.Craft.Drag = DragConfig{Base: 0.35, Jitter: 0.1}
	cfg.Resources = []ResourceConfig{{Name: "MonoPropellant", Mass: 0.75, Flow: "stage_priority"}}
	cfg.Thrusters = append(
		rcsQuad("MonoPropellant", 1.1, 1.0, 240, 100),
		rcsQuad("MonoPropellant", 0.9, 1.0, 240, 100)...,
	)
	for i := 4; i < 8; i++ {
		cfg.Thrusters[i].Name += "-lower"
		cfg.Thrusters[i].Position[2] = -0.8
	}
	cfg.ControllerParams.Command = [3]float64{0, 0, 0.2}
	return cfg
}

// mixed puts a no-flow tank behind half the blocks, so the estimate is
// flagged as not trustworthy.
func mixed() *Config {
	cfg := probe()
	cfg.Name = "mixed"
	cfg.Craft.Translate = [3]float64{1, 0, 0}
	cfg.Resources = append(cfg.Resources, ResourceConfig{Name: "XenonGas", Mass: 0.1, Flow: "no_flow"})
	for i := range cfg.Thrusters {
		if i%2 == 1 {
			cfg.Thrusters[i].Resource = "XenonGas"
			cfg.Thrusters[i].Isp = [][2]float64{{0, 4200}}
			cfg.Thrusters[i].Thrust = 0.5
		}
	}
	return cfg
}

func tumble() *Config {
	cfg := probe()
	cfg.Name = "tumble"
	cfg.Controller = "none"
	cfg.Duration = 60
	cfg.Craft.AngularVelocity = [3]float64{1.5, 0.8, -2.0}
	cfg.Craft.Damping = 0.01
	return cfg
}
