// Package viz is the terminal readout for a running scenario, built on
// Bubble Tea.
//
// The right panel shows what the estimator last published (delta-v, burn
// time, Isp, propellant, thrust and the pooling warning) next to the
// diagnostics: angular velocity, sampled angular acceleration with its peak
// hold, and the averaged drag coefficient. The left panel is a braille
// [Canvas] plan view of the RCS blocks with their firing nozzles.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single tick while paused
//	E     - Switch the estimator off and on
//	M     - Cycle estimator mode
//	T     - Cycle themes
//	Q     - Quit
package viz
