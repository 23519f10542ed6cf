// Package sidecut reconstructs a planar path from a radius-of-curvature
// profile. It was designed to turn the sidecut radius profile of a ski or
// snowboard into its edge outline, but it works for any profile that
// describes curvature as a function of a longitudinal coordinate.
//
// # Radius profiles
//
// A radius profile is a sequence of [ProfileSegment] values in the plane
// spanned by the longitudinal coordinate x and the signed radius of
// curvature. Positive radii bend the path one way and negative radii the
// other. [Line], [QuadBez] and [CubicBez] are segments whose radius is read
// off their own geometry; [FuncSegment] wraps a radius function owned by a
// host application.
//
// Segments may be given in any order and may leave gaps between each other.
// They must not overlap, must not cross the axis, and must not come close to
// a zero radius.
//
// # Reconstruction
//
// Reconstruction happens in five steps, each available as its own function
// and composed by [Reconstruct]:
//
//   - [Sample] samples every segment evenly, extending neighbours into gaps
//   - [Segment] groups consecutive samples of equal sign into a [Region]
//   - [Integrate] turns radii into curvature and integrates it twice
//   - [Solve] finds the initial slope meeting one [ConstraintSpec]
//   - [ExtractFeatures] locates the widest points, the waist and the taper
//
// The double integral has two free constants, the slope theta0 and the
// offset y0 at the origin. Because the path depends on them affinely,
// [IntegralBasis] stores only the integrals and produces the path for any
// choice of constants in closed form. [Solve] then only has to search a
// single scalar.
//
// # Constraints and units
//
// A constraint fixes either the waist location, a length, or the taper
// angle. Targets and tolerances are [Quantity] values tagged with their
// [Dimension], and mixing dimensions is rejected rather than coerced.
//
// Solving never fails for numerical reasons alone. A result whose
// [SolveResult.Status] is not [Converged] carries the best estimate found,
// together with the iteration count and residual.
//
// # Literature
//
// This package makes use of the following ideas:
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality] by Oliveira and Takahashi
//   - [How to solve a cubic equation, revisited] by Christoph Peters
//   - [Successive parabolic interpolation]
//   - [Trapezoidal rule]
//
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
// [How to solve a cubic equation, revisited]: https://momentsingraphics.de/CubicRoots.html
// [Successive parabolic interpolation]: https://en.wikipedia.org/wiki/Successive_parabolic_interpolation
// [Trapezoidal rule]: https://en.wikipedia.org/wiki/Trapezoidal_rule
package sidecut
