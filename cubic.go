package lyon

import (
	"math"
)

// A CubicBezierSegment is a cubic Bézier curve segment, defined by its two
// endpoints From and To and the two control points Ctrl1 and Ctrl2.
type CubicBezierSegment struct {
	From  Point
	Ctrl1 Point
	Ctrl2 Point
	To    Point
}

// IsInf reports whether any coordinate of the segment is infinite.
func (cb CubicBezierSegment) IsInf() bool {
	return cb.From.IsInf() || cb.Ctrl1.IsInf() || cb.Ctrl2.IsInf() || cb.To.IsInf()
}

// IsNaN reports whether any coordinate of the segment is NaN.
func (cb CubicBezierSegment) IsNaN() bool {
	return cb.From.IsNaN() || cb.Ctrl1.IsNaN() || cb.Ctrl2.IsNaN() || cb.To.IsNaN()
}

// Sample evaluates the curve at parameter t.
func (cb CubicBezierSegment) Sample(t float64) Point {
	mt := 1.0 - t
	a := Vec2(cb.From).Mul(mt * mt * mt)
	b := Vec2(cb.Ctrl1).Mul(mt * mt * 3.0)
	c := Vec2(cb.Ctrl2).Mul(mt * 3.0)
	d := Vec2(cb.To)
	v := a.Add(b.Add(c.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Split subdivides the curve at parameter t, using de Casteljau, and returns
// the parts covering [0, t] and [t, 1]. Both parts share the curve point at
// t; it is computed once.
func (c CubicBezierSegment) Split(t float64) (CubicBezierSegment, CubicBezierSegment) {
	q0 := c.From.Lerp(c.Ctrl1, t)
	q1 := c.Ctrl1.Lerp(c.Ctrl2, t)
	q2 := c.Ctrl2.Lerp(c.To, t)
	r0 := q0.Lerp(q1, t)
	r1 := q1.Lerp(q2, t)
	pm := r0.Lerp(r1, t)
	return CubicBezierSegment{c.From, q0, r0, pm},
		CubicBezierSegment{pm, r1, q2, c.To}
}

// BeforeSplit returns the part of the curve covering [0, t].
func (c CubicBezierSegment) BeforeSplit(t float64) CubicBezierSegment {
	before, _ := c.Split(t)
	return before
}

// AfterSplit returns the part of the curve covering [t, 1].
func (c CubicBezierSegment) AfterSplit(t float64) CubicBezierSegment {
	_, after := c.Split(t)
	return after
}

// Inflections returns the parameters at which the curve's signed curvature
// changes sign, in increasing order.
//
// The function returns up to two parameters in the first return value, with
// the second return value specifying the number of parameters returned. All
// returned parameters are in the interval [0, 1).
//
// A degenerate curve whose curvature is zero everywhere, such as a straight
// line, reports a single inflection at parameter 0.
func (cb CubicBezierSegment) Inflections() ([2]float64, int) {
	pa := cb.Ctrl1.Sub(cb.From)
	pb := Vec2(cb.Ctrl2).Sub(Vec2(cb.Ctrl1).Mul(2)).Add(Vec2(cb.From))
	pc := Vec2(cb.To).Sub(Vec2(cb.Ctrl2).Mul(3)).Add(Vec2(cb.Ctrl1).Mul(3)).Sub(Vec2(cb.From))

	a := pb.Cross(pc)
	b := pa.Cross(pc)
	c := pa.Cross(pb)

	var out [2]float64
	if a == 0 {
		if b == 0 {
			if c == 0 {
				// The curvature is zero everywhere. Report a single
				// inflection at the start so that flattening treats the
				// entire curve as one flat span.
				out[0] = 0.0
				return out, 1
			}
			return out, 0
		}
		if t := -c / b; inflectionInRange(t) {
			out[0] = t
			return out, 1
		}
		return out, 0
	}

	discriminant := b*b - 4.0*a*c
	if discriminant < 0 {
		return out, 0
	}
	if discriminant == 0 {
		if t := -b / (2.0 * a); inflectionInRange(t) {
			out[0] = t
			return out, 1
		}
		return out, 0
	}

	// The textbook quadratic formula cancels catastrophically when b
	// dominates the discriminant. Compute the larger-magnitude intermediate
	// first and derive both roots from it.
	q := -0.5 * (b + math.Copysign(math.Sqrt(discriminant), b))
	first := q / a
	second := c / q
	if second < first {
		first, second = second, first
	}

	n := 0
	if inflectionInRange(first) {
		out[n] = first
		n++
	}
	if inflectionInRange(second) {
		out[n] = second
		n++
	}
	return out, n
}

// Inflections at exactly 1 are of no use to flattening, which emits the curve
// endpoint separately.
func inflectionInRange(t float64) bool {
	return t >= 0 && t < 1
}
