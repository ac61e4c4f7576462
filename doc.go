// Package lyon provides fast, tolerance-bounded flattening of cubic Bézier
// curves: approximating a curve with a polyline whose maximum distance to the
// true curve never exceeds a caller-chosen tolerance. It was designed as the
// geometry core for 2D vector graphics pipelines, which reduce curved
// outlines to line segments before tessellating or rasterizing them.
//
// # Lyon
//
// This package is a manual, idiomatic Go port of the cubic Bézier flattening
// core of the [lyon] Rust crates. Lyon flattens with a closed-form step
// estimate rather than the more common recursive subdivision, which produces
// vertices one at a time, in order, without a stack or an output buffer.
//
// # Features
//
// We provide the following notable features:
//
//   - Inflection point computation (see [CubicBezierSegment.Inflections])
//   - Closed-form flattening with bounded error (see [CubicBezierSegment.Flattened])
//   - Incremental pull-based flattening (see [CubicFlattener])
//   - Subdivision and evaluation of cubic Béziers (see [CubicBezierSegment.Split])
//   - Feeding flattened outlines to a rasterizer (see [RasterizeContour])
//
// # Flattening
//
// Flattening proceeds in two phases. The curve is first subdivided at its
// inflection points, of which a cubic Bézier has at most two, leaving spans
// whose curvature does not change sign. Each span is then walked with a step
// size computed in closed form from a local quadratic model of the curve (the
// method of Hain et al.): the model predicts how far the curve may be
// followed before a straight chord drifts out of tolerance, every step emits
// one vertex, and the walk finishes with the span's exact endpoint rather
// than an approximation of it.
//
// The polyline can be consumed three ways: through a callback (see
// [CubicBezierSegment.ForEachFlattened]), as an iterator (see
// [CubicBezierSegment.Flattened]), or one vertex at a time under caller
// control (see [CubicFlattener]). All three produce the identical sequence of
// vertices, as they share one implementation.
//
// # Literature
//
// This package makes use of the following ideas:
//   - [A Primer on Bézier Curves]
//   - [Fast, precise flattening of cubic Bézier path and offset curves] by Hain, Ahmad, Racherla, and Langan
//
// [lyon]: https://github.com/nical/lyon
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [Fast, precise flattening of cubic Bézier path and offset curves]: https://doi.org/10.1016/j.cag.2005.08.002
package lyon
