package vessel

import "sort"

// Curve maps a scalar condition (static pressure in atmospheres) to a value.
type Curve interface {
	Evaluate(x float64) float64
}

// CurveFunc adapts a plain function to a Curve.
type CurveFunc func(float64) float64

func (f CurveFunc) Evaluate(x float64) float64 { return f(x) }

// Key is one point of a FloatCurve.
type Key struct {
	X, Y float64
}

// FloatCurve is a piecewise-linear curve through its keys, clamped at both
// ends. An empty curve evaluates to zero.
type FloatCurve struct {
	keys []Key
}

func NewFloatCurve(keys ...Key) *FloatCurve {
	c := &FloatCurve{keys: append([]Key(nil), keys...)}
	sort.Slice(c.keys, func(i, j int) bool { return c.keys[i].X < c.keys[j].X })
	return c
}

// ConstantCurve is the curve of an Isp that does not depend on pressure.
func ConstantCurve(v float64) *FloatCurve {
	return NewFloatCurve(Key{X: 0, Y: v})
}

func (c *FloatCurve) Keys() []Key {
	return append([]Key(nil), c.keys...)
}

func (c *FloatCurve) Evaluate(x float64) float64 {
	n := len(c.keys)
	if n == 0 {
		return 0
	}
	if x <= c.keys[0].X {
		return c.keys[0].Y
	}
	if x >= c.keys[n-1].X {
		return c.keys[n-1].Y
	}

	i := sort.Search(n, func(i int) bool { return c.keys[i].X >= x })
	a, b := c.keys[i-1], c.keys[i]
	span := b.X - a.X
	if span == 0 {
		return b.Y
	}
	frac := (x - a.X) / span
	return a.Y + frac*(b.Y-a.Y)
}
