// Package sim is the fixed-step scheduler that drives the estimator the way a
// game engine's physics update would.
//
// Every tick runs in a fixed order:
//
//  1. the [Controller] computes the attitude command
//  2. the [Vehicle] fires its thrusters and hands out a [vessel.Snapshot]
//  3. the [deltav.Estimator] aggregates and publishes
//  4. [Metric] values and [Observer] callbacks see the tick's [Sample]
//  5. the [Integrator] advances the rotational state, then propellant is drawn
//
// # Thread Safety
//
// A Simulator is NOT thread-safe; run it from one goroutine. Readers on other
// goroutines go through [deltav.Estimator.Latest].
package sim
