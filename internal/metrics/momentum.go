package metrics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rcsaid/internal/sim"
)

// AngularMomentum tracks L = I·ω about the craft's principal axes. Value is
// |L|; the components and the inertia go out as readings.
type AngularMomentum struct {
	name    string
	inertia mgl64.Vec3
	l       mgl64.Vec3
}

func NewAngularMomentum(inertia mgl64.Vec3) *AngularMomentum {
	return &AngularMomentum{name: "angmo", inertia: inertia}
}

func (a *AngularMomentum) Name() string { return a.name }

func (a *AngularMomentum) Observe(s sim.Sample) {
	w := s.AngularVelocity
	a.l = mgl64.Vec3{a.inertia[0] * w[0], a.inertia[1] * w[1], a.inertia[2] * w[2]}
}

func (a *AngularMomentum) Value() float64 { return a.l.Len() }

// Momentum is the last observed L.
func (a *AngularMomentum) Momentum() mgl64.Vec3 { return a.l }

func (a *AngularMomentum) Report(readings map[string]float64) {
	readings["angmo_x"] = a.l[0]
	readings["angmo_y"] = a.l[1]
	readings["angmo_z"] = a.l[2]
	readings["moi_x"] = a.inertia[0]
	readings["moi_y"] = a.inertia[1]
	readings["moi_z"] = a.inertia[2]
}

func (a *AngularMomentum) Reset() { a.l = mgl64.Vec3{} }
