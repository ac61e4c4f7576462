package lyon

import (
	"iter"
	"math"
)

// A CubicFlattener approximates a cubic Bézier segment with a polyline,
// producing one vertex per call to [CubicFlattener.Next].
//
// The tolerance value controls the maximum distance between the curve and its
// polyline approximation. The flattening step is computed in closed form from
// a local quadratic model of the curve (the method of Hain et al.), not by
// recursive subdivision, so the bound is approximate rather than absolutely
// guaranteed. The number of vertices tends to scale as the inverse square
// root of tolerance. Because the step estimate only holds on spans of
// constant curvature sign, the curve is first subdivided at its inflection
// points and each span is flattened on its own.
//
// The reported vertices do not include the segment's starting point. The
// final vertex is exactly the segment's To, not a computed approximation of
// it.
//
// The tolerance must be greater than zero; the flattener has no way to report
// a bad tolerance and will not terminate with one. A CubicFlattener cannot be
// reset or restarted, and it must not be used from multiple goroutines
// concurrently. See [CubicBezierSegment.Flattened] for a restartable
// sequence.
type CubicFlattener struct {
	remaining CubicBezierSegment
	current   option[CubicBezierSegment]
	// The flattener walks at most three inflection-free spans. pending, when
	// set, marks that current ends at an inflection rather than at the end
	// of the curve; following holds the split position of the span after
	// that, remapped into remaining's parameter space.
	pending   option[float64]
	following option[float64]
	tolerance float64
}

// NewCubicFlattener returns a flattener producing the vertices of a polyline
// approximating c to within tolerance. The tolerance must be greater than
// zero.
func NewCubicFlattener(c CubicBezierSegment, tolerance float64) *CubicFlattener {
	f := &CubicFlattener{
		remaining: c,
		tolerance: tolerance,
	}
	ts, n := c.Inflections()
	if n == 0 {
		f.current.set(c)
		return f
	}
	f.pending.set(ts[0])
	before, after := c.Split(ts[0])
	f.current.set(before)
	f.remaining = after
	if n > 1 {
		// Splitting off the first span moved the remaining curve to a new
		// parameter space; map the second inflection into it.
		f.following.set((ts[1] - ts[0]) / (1.0 - ts[0]))
	}
	return f
}

// Next returns the next vertex of the polyline. The second return value is
// false once the curve is exhausted, and stays false on further calls.
func (f *CubicFlattener) Next() (Point, bool) {
	if !f.current.isSet && f.pending.isSet {
		// The previous span has been walked to its end; materialize the
		// next one and shift the queue.
		if f.following.isSet {
			before, after := f.remaining.Split(f.following.value)
			f.current.set(before)
			f.remaining = after
		} else {
			f.current.set(f.remaining)
		}
		f.pending = f.following
		f.following.clear()
	}
	if !f.current.isSet {
		return Point{}, false
	}

	c := f.current.value
	t := noInflectionFlatteningStep(c, f.tolerance)
	if t >= 1.0 {
		f.current.clear()
		return c.To, true
	}
	c = c.AfterSplit(t)
	f.current.set(c)
	return c.From, true
}

// ForEachFlattened approximates the curve with a polyline, invoking callback
// with each vertex in order, on the calling goroutine. The vertices do not
// include c.From, and the final vertex is exactly c.To. The tolerance must be
// greater than zero. See [CubicFlattener] for the approximation guarantees.
func (c CubicBezierSegment) ForEachFlattened(tolerance float64, callback func(Point)) {
	f := NewCubicFlattener(c, tolerance)
	for p, ok := f.Next(); ok; p, ok = f.Next() {
		callback(p)
	}
}

// Flattened returns an iterator over the vertices of a polyline approximating
// the curve, in order, not including c.From and ending with exactly c.To. The
// tolerance must be greater than zero. See [CubicFlattener] for the
// approximation guarantees.
//
// Every iteration of the returned sequence flattens anew, so unlike a single
// [CubicFlattener] it may be ranged over multiple times, and a range loop may
// break early at no cost.
func (c CubicBezierSegment) Flattened(tolerance float64) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		f := NewCubicFlattener(c, tolerance)
		for p, ok := f.Next(); ok; p, ok = f.Next() {
			if !yield(p) {
				return
			}
		}
	}
}

// noInflectionFlatteningStep returns the largest parameter step from the
// start of c such that the chord across the step stays within tolerance of
// the curve. c must have no inflection point in the interior of its
// parameter range. A return value >= 1 means a single chord to the endpoint
// is flat enough.
func noInflectionFlatteningStep(c CubicBezierSegment, tolerance float64) float64 {
	v1 := c.Ctrl1.Sub(c.From)
	v2 := c.Ctrl2.Sub(c.From)

	// The local quadratic model's deviation grows with the distance from
	// Ctrl2 to the start tangent, which is the cross product below divided
	// by the tangent's length.
	cross := v2.Cross(v1)
	h := v1.Hypot()
	if cross*h == 0 {
		// Locally straight at the start; no curvature to bound the step.
		return 1.0
	}
	s2inv := h / cross

	t := 2.0 * math.Sqrt(tolerance*math.Abs(s2inv)/3.0)

	// A step this close to 1 would leave a remainder span too short to
	// place another vertex in; snap to the endpoint.
	if t >= 0.995 {
		return 1.0
	}
	return t
}

type option[T any] struct {
	isSet bool
	value T
}

func (opt *option[T]) set(v T) {
	opt.isSet = true
	opt.value = v
}

func (opt *option[T]) clear() {
	opt.isSet = false
	opt.value = *new(T)
}
