package lyon

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// Curves covering the interesting flattening shapes: no inflections, one, a
// sharp turn whose inflections fall outside the parameter range, and a
// degenerate curve whose last control point repeats the endpoint.
var flattenFixtures = []struct {
	name      string
	c         CubicBezierSegment
	tolerance float64
}{
	{
		"arch",
		CubicBezierSegment{Pt(0.0, 0.0), Pt(1.0, 0.0), Pt(1.0, 1.0), Pt(0.0, 1.0)},
		0.01,
	},
	{
		"s",
		CubicBezierSegment{Pt(0.0, 0.0), Pt(1.0, 0.0), Pt(0.0, 1.0), Pt(1.0, 1.0)},
		0.01,
	},
	{
		"elbow",
		CubicBezierSegment{Pt(141.0, 135.0), Pt(141.0, 130.0), Pt(140.0, 130.0), Pt(131.0, 130.0)},
		0.01,
	},
	{
		"doubled_end",
		CubicBezierSegment{
			Pt(11.71726, 9.07143),
			Pt(1.889879, 13.22917),
			Pt(18.142855, 19.27679),
			Pt(18.142855, 19.27679),
		},
		0.15,
	},
}

func flattenWithCallback(c CubicBezierSegment, tolerance float64) []Point {
	var pts []Point
	c.ForEachFlattened(tolerance, func(p Point) {
		pts = append(pts, p)
	})
	return pts
}

func TestFlattenedMatchesForEach(t *testing.T) {
	for _, tt := range flattenFixtures {
		t.Run(tt.name, func(t *testing.T) {
			push := flattenWithCallback(tt.c, tt.tolerance)
			pull := slices.Collect(tt.c.Flattened(tt.tolerance))
			if len(push) != len(pull) {
				t.Fatalf("got %d vertices from the callback and %d from the iterator", len(push), len(pull))
			}
			diff(t, push, pull, cmpopts.EquateApprox(0, 1e-7))

			var manual []Point
			f := NewCubicFlattener(tt.c, tt.tolerance)
			for p, ok := f.Next(); ok; p, ok = f.Next() {
				manual = append(manual, p)
			}
			diff(t, push, manual)
		})
	}
}

func TestFlattenedVertices(t *testing.T) {
	for _, tt := range flattenFixtures {
		t.Run(tt.name, func(t *testing.T) {
			pts := flattenWithCallback(tt.c, tt.tolerance)
			if len(pts) < 2 {
				t.Fatalf("got %d vertices, want at least 2", len(pts))
			}
			/* not using an approximate comparison, we want an exact match */
			if last := pts[len(pts)-1]; last != tt.c.To {
				t.Errorf("got final vertex %v, want exactly %v", last, tt.c.To)
			}
			for _, p := range pts {
				if p.IsNaN() {
					t.Fatalf("flattening produced NaN vertex %v", p)
				}
			}
		})
	}

	// A gentle arch at this tolerance needs interior vertices, not just the
	// endpoint.
	if pts := flattenWithCallback(flattenFixtures[0].c, 0.01); len(pts) <= 2 {
		t.Errorf("got %d vertices, want more than 2", len(pts))
	}
}

func TestFlattenedDeviation(t *testing.T) {
	const samples = 400
	for _, tt := range flattenFixtures {
		t.Run(tt.name, func(t *testing.T) {
			polyline := append([]Point{tt.c.From}, flattenWithCallback(tt.c, tt.tolerance)...)
			worst := 0.0
			for i := range samples + 1 {
				p := tt.c.Sample(float64(i) / samples)
				if d := polylineDistance(polyline, p); d > worst {
					worst = d
				}
			}
			// The closed-form step is an estimate, not a guarantee, so allow
			// some slack beyond the requested tolerance.
			if worst > 2*tt.tolerance {
				t.Errorf("got maximum deviation %g with tolerance %g", worst, tt.tolerance)
			}
		})
	}
}

func polylineDistance(polyline []Point, p Point) float64 {
	best := math.Inf(1)
	for i := 1; i < len(polyline); i++ {
		if d := segmentDistance(polyline[i-1], polyline[i], p); d < best {
			best = d
		}
	}
	return best
}

func segmentDistance(a, b, p Point) float64 {
	ab := b.Sub(a)
	den := ab.Hypot2()
	if den == 0 {
		return a.Distance(p)
	}
	t := p.Sub(a).Dot(ab) / den
	t = max(0, min(1, t))
	return a.Translate(ab.Mul(t)).Distance(p)
}

func TestFlattenedLine(t *testing.T) {
	// A line in cubic clothing flattens to its endpoints. The start point
	// appears because the degenerate curve splits at parameter 0 and the
	// zero-length piece before the split contributes its endpoint.
	c := CubicBezierSegment{Pt(0.0, 0.0), Pt(1.0, 1.0), Pt(2.0, 2.0), Pt(3.0, 3.0)}
	want := []Point{Pt(0.0, 0.0), Pt(3.0, 3.0)}
	diff(t, want, slices.Collect(c.Flattened(0.01)))
}

func TestFlattenedEarlyBreak(t *testing.T) {
	c := flattenFixtures[0].c
	var prefix []Point
	for p := range c.Flattened(0.01) {
		prefix = append(prefix, p)
		if len(prefix) == 2 {
			break
		}
	}
	// The sequence flattens anew on every range, so a fresh loop sees the
	// same vertices from the start.
	full := slices.Collect(c.Flattened(0.01))
	diff(t, full[:2], prefix)
}

func TestCubicFlattenerExhausted(t *testing.T) {
	f := NewCubicFlattener(flattenFixtures[1].c, 0.01)
	n := 0
	for _, ok := f.Next(); ok; _, ok = f.Next() {
		if n++; n > 10000 {
			t.Fatal("flattening does not terminate")
		}
	}
	for range 3 {
		if p, ok := f.Next(); ok {
			t.Fatalf("exhausted flattener produced vertex %v", p)
		}
	}
}

func TestNoInflectionFlatteningStep(t *testing.T) {
	// The start tangent passes through the second control point; the local
	// quadratic model sees no curvature and the whole span is one chord.
	c := CubicBezierSegment{Pt(0.0, 0.0), Pt(1.0, 0.0), Pt(2.0, 0.0), Pt(3.0, 1.0)}
	if s := noInflectionFlatteningStep(c, 0.01); s != 1.0 {
		t.Errorf("got step %v, want 1", s)
	}

	c = CubicBezierSegment{Pt(0.0, 0.0), Pt(1.0, 0.0), Pt(1.0, 1.0), Pt(0.0, 1.0)}
	want := 2 * math.Sqrt(0.01/3)
	if s := noInflectionFlatteningStep(c, 0.01); math.Abs(s-want) > 1e-12 {
		t.Errorf("got step %v, want %v", s, want)
	}

	// Near-complete steps snap to exactly 1.
	if s := noInflectionFlatteningStep(c, 0.745); s != 1.0 {
		t.Errorf("got step %v, want 1", s)
	}
}

func BenchmarkFlattenCubic(b *testing.B) {
	curves := []struct {
		name string
		c    CubicBezierSegment
	}{
		{"arch", CubicBezierSegment{Pt(0.0, 0.0), Pt(100.0, 0.0), Pt(100.0, 100.0), Pt(0.0, 100.0)}},
		{"s", CubicBezierSegment{Pt(0.0, 0.0), Pt(100.0, 0.0), Pt(0.0, 100.0), Pt(100.0, 100.0)}},
	}
	for _, bc := range curves {
		for i := range 5 {
			tolerance := 1.0 / math.Pow(10, float64(i))
			b.Run(fmt.Sprintf("%s/1e-%d", bc.name, i), func(b *testing.B) {
				for range b.N {
					for range bc.c.Flattened(tolerance) {
					}
				}
			})
		}
	}
}
