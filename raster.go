package lyon

import (
	"golang.org/x/image/vector"
)

// RasterizeCubic adds the flattened form of c to ras as one open subpath: a
// move to c.From followed by one line per polyline vertex. Coordinates are in
// the rasterizer's pixel space, so tolerances below one pixel, such as 0.25,
// give antialiasing-grade results.
func RasterizeCubic(ras *vector.Rasterizer, c CubicBezierSegment, tolerance float64) {
	ras.MoveTo(float32(c.From.X), float32(c.From.Y))
	c.ForEachFlattened(tolerance, func(p Point) {
		ras.LineTo(float32(p.X), float32(p.Y))
	})
}

// RasterizeContour adds the flattened form of a closed contour to ras.
// Consecutive curves are expected to be contiguous, each starting at its
// predecessor's endpoint; the flattener emits exact curve endpoints, so
// contiguity established when building the contour survives flattening. The
// contour is closed at the end, from the last curve's endpoint back to the
// first curve's start.
func RasterizeContour(ras *vector.Rasterizer, contour []CubicBezierSegment, tolerance float64) {
	if len(contour) == 0 {
		return
	}
	ras.MoveTo(float32(contour[0].From.X), float32(contour[0].From.Y))
	for _, c := range contour {
		c.ForEachFlattened(tolerance, func(p Point) {
			ras.LineTo(float32(p.X), float32(p.Y))
		})
	}
	ras.ClosePath()
}
