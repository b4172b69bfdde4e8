package vessel

import "github.com/go-gl/mathgl/mgl64"

// Contributor is a force-producing unit as the estimator sees it.
type Contributor interface {
	Enabled() bool
	Resource() string
	IspCurve() Curve
	ThrustVectors() []mgl64.Vec3
}

// Nozzle is one exhaust port of a thruster. Direction is a unit vector in
// vessel space pointing along the exhaust.
type Nozzle struct {
	Direction mgl64.Vec3
	Throttle  float64
}

// Thruster is an RCS block mounted at Position (relative to the centre of
// mass). Every nozzle shares MaxThrust and the Isp curve.
type Thruster struct {
	Name         string
	ResourceName string
	Curve        Curve
	Position     mgl64.Vec3
	MaxThrust    float64
	Nozzles      []Nozzle
	Disabled     bool
}

func (t *Thruster) Enabled() bool {
	if t.Disabled {
		return false
	}
	for _, n := range t.Nozzles {
		if n.Throttle > 0 {
			return true
		}
	}
	return false
}

func (t *Thruster) Resource() string { return t.ResourceName }

func (t *Thruster) IspCurve() Curve {
	if t.Curve == nil {
		return CurveFunc(func(float64) float64 { return 0 })
	}
	return t.Curve
}

// ThrustVectors returns one exhaust vector per nozzle, scaled by its throttle.
func (t *Thruster) ThrustVectors() []mgl64.Vec3 {
	vs := make([]mgl64.Vec3, len(t.Nozzles))
	for i, n := range t.Nozzles {
		vs[i] = Unit(n.Direction).Mul(t.MaxThrust * n.Throttle)
	}
	return vs
}

// Torque is the moment the thruster applies about the centre of mass.
func (t *Thruster) Torque() mgl64.Vec3 {
	var torque mgl64.Vec3
	for _, v := range t.ThrustVectors() {
		torque = torque.Add(t.Position.Cross(v.Mul(-1)))
	}
	return torque
}

// Idle zeroes every nozzle throttle.
func (t *Thruster) Idle() {
	for i := range t.Nozzles {
		t.Nozzles[i].Throttle = 0
	}
}
