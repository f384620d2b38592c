// Package analysis provides curvature and trajectory diagnostics built
// on top of the geometry and geodesic packages: parameter sweeps of the
// scalar curvature and separation tracking between nearby geodesics.
package analysis
