// Package viz provides a terminal live view for the curvature engine.
//
// The view is built on the Bubble Tea framework. Each frame advances a
// test particle along its geodesic, pulses the matter density feeding the
// metric, and recomputes the Ricci scalar. The left pane draws the
// particle trail on a Braille canvas, the right pane shows curvature
// statistics and a scalar history chart.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset particle and metric
//	Q     - Quit
package viz
