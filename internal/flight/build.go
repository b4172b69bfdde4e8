package flight

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rcsaid/internal/config"
	"github.com/san-kum/rcsaid/internal/vessel"
)

// FromConfig builds the craft a scenario describes.
func FromConfig(cfg *config.Config) (*Craft, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	thrusters := make([]*vessel.Thruster, 0, len(cfg.Thrusters))
	for i, tc := range cfg.Thrusters {
		name := tc.Name
		if name == "" {
			name = fmt.Sprintf("rcs-%d", i)
		}

		keys := make([]vessel.Key, len(tc.Isp))
		for j, k := range tc.Isp {
			keys[j] = vessel.Key{X: k[0], Y: k[1]}
		}

		nozzles := make([]vessel.Nozzle, len(tc.Nozzles))
		for j, d := range tc.Nozzles {
			nozzles[j] = vessel.Nozzle{Direction: vessel.Unit(mgl64.Vec3(d))}
		}

		thrusters = append(thrusters, &vessel.Thruster{
			Name:         name,
			ResourceName: tc.Resource,
			Curve:        vessel.NewFloatCurve(keys...),
			Position:     mgl64.Vec3(tc.Position),
			MaxThrust:    tc.Thrust,
			Nozzles:      nozzles,
			Disabled:     tc.Disabled,
		})
	}

	c := NewCraft(cfg.Craft.DryMass, mgl64.Vec3(cfg.Craft.Inertia), thrusters, cfg.BuildResources(), cfg.Seed)
	c.Damping = cfg.Craft.Damping
	c.Translate = mgl64.Vec3(cfg.Craft.Translate)
	c.Drag = Drag{Base: cfg.Craft.Drag.Base, Jitter: cfg.Craft.Drag.Jitter}
	return c, nil
}
