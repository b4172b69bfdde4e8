package vessel

import "github.com/go-gl/mathgl/mgl64"

// unitEpsilon matches the game engine: vectors shorter than this normalize
// to zero instead of blowing up.
const unitEpsilon = 1e-5

// Unit returns v scaled to length one, or the zero vector when v is too
// short to have a direction.
func Unit(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < unitEpsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// NetThrust is the force the enabled contributors apply to the vessel: the
// negated sum of their exhaust vectors.
func NetThrust(cs []Contributor) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, c := range cs {
		if !c.Enabled() {
			continue
		}
		for _, v := range c.ThrustVectors() {
			sum = sum.Add(v)
		}
	}
	return sum.Mul(-1)
}
