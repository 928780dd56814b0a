// Package analysis provides verification tools for computed
// trajectories.
//
//   - [AllClose]: elementwise closeness test with relative and
//     absolute tolerances
//   - [Residuals]: pointwise difference against a reference function
//   - [LawSeries]: evolution of a conservation law along a trajectory
//   - [CompareReport]: summary of a numeric-versus-analytic check
package analysis
