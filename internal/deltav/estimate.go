package deltav

import (
	"math"

	"github.com/san-kum/rcsaid/internal/aggregate"
	"github.com/san-kum/rcsaid/internal/vessel"
)

const (
	// G is standard gravity as used by the definition of Isp.
	G = 9.81

	// MinThrust is the net thrust below which the vessel is treated as not
	// thrusting at all.
	MinThrust = 0.001
)

type Estimate struct {
	Mode         Mode
	DeltaV       float64
	BurnTime     float64
	Isp          float64
	ResourceMass float64
	Thrust       float64
	Sane         bool
	Degenerate   bool
}

// Compute is the pure form of one estimator tick.
func Compute(mode Mode, snap vessel.Snapshot) Estimate {
	res, ok := StrategyFor(mode).Aggregate(snap)
	if !ok {
		return Estimate{Mode: mode, Sane: true}
	}
	est := FromAggregate(res, snap.Mass, snap.NetThrust.Len())
	est.Mode = mode
	return est
}

// FromAggregate applies the rocket equation to an aggregation result.
func FromAggregate(res aggregate.Result, fullMass, thrust float64) Estimate {
	est := Estimate{
		Isp:          res.Isp,
		ResourceMass: res.ResourceMass,
		Thrust:       thrust,
		Sane:         res.Sane,
	}

	dryMass := fullMass - res.ResourceMass
	if fullMass <= 0 || dryMass <= 0 {
		est.Degenerate = true
	} else {
		est.DeltaV = DeltaV(res.Isp, fullMass, dryMass)
	}

	est.BurnTime = BurnTime(res.ResourceMass, res.Isp, thrust)
	return est
}

// DeltaV is the Tsiolkovsky rocket equation. Callers guard dryMass > 0.
func DeltaV(isp, fullMass, dryMass float64) float64 {
	return G * isp * math.Log(fullMass/dryMass)
}

func BurnTime(resourceMass, isp, thrust float64) float64 {
	if thrust < MinThrust {
		return 0
	}
	return resourceMass * G * isp / thrust
}
