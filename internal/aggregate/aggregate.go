// Package aggregate sums what the thrust contributors of one tick burn and how
// efficiently they burn it.
package aggregate

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rcsaid/internal/vessel"
)

// ReferencePressure is the condition the Isp curves are read at: vacuum.
const ReferencePressure = 0.0

type Result struct {
	ResourceMass float64
	Isp          float64
	Sane         bool
}

// Run aggregates resource mass first, then Isp.
func Run(snap vessel.Snapshot) Result {
	mass, sane := ResourceMass(snap.Contributors, snap.Masses, snap.Flows)
	return Result{
		ResourceMass: mass,
		Isp:          Isp(snap.Contributors, snap.NetThrust),
		Sane:         sane,
	}
}

// ResourceMass sums the mass of every distinct resource the contributors burn,
// counting a shared resource once. Every contributor in the set counts here,
// enabled or not. sane turns false as soon as one distinct resource cannot be
// pooled across the vessel; an empty set is sane.
func ResourceMass(cs []vessel.Contributor, masses vessel.MassLookup, flows vessel.FlowLookup) (mass float64, sane bool) {
	sane = true
	counted := make(map[string]struct{}, len(cs))

	for _, c := range cs {
		name := c.Resource()
		if _, seen := counted[name]; seen {
			continue
		}
		counted[name] = struct{}{}

		if masses != nil {
			if m, ok := masses.Mass(name); ok {
				mass += m
			}
		}

		flow := vessel.FlowUnknown
		if flows != nil {
			flow = flows.FlowMode(name)
		}
		if !flow.Poolable() {
			sane = false
		}
	}

	return mass, sane
}

// Isp is the thrust-weighted mean specific impulse of the enabled contributors,
// projected onto the direction opposite the net vessel thrust. Every thrust
// vector is weighted by its own magnitude. Zero total weight gives zero.
func Isp(cs []vessel.Contributor, netThrust mgl64.Vec3) float64 {
	var num, den float64
	back := vessel.Unit(netThrust.Mul(-1))

	for _, c := range cs {
		if !c.Enabled() {
			continue
		}
		v1 := c.IspCurve().Evaluate(ReferencePressure)
		for _, t := range c.ThrustVectors() {
			v2 := vessel.Unit(t).Mul(v1).Dot(back)
			mag := t.Len()
			num += mag * v2
			den += mag
		}
	}

	if den == 0 {
		return 0
	}
	return num / den
}
