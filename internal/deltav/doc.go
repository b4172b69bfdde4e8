// Package deltav turns one tick's aggregation into a delta-v and burn-time
// estimate.
//
// The estimate is computed in full from a [vessel.Snapshot] and then published
// into the [Estimator]'s single slot with one store, so readers on other
// goroutines see either the previous tick's estimate or the current one.
//
// # Modes
//
// Every [Mode] maps to a [Strategy]. Only [ModeRCS] aggregates; the other
// modes publish the zero estimate.
//
// # Degenerate mass
//
// When the propellant mass reaches or exceeds the vessel mass the logarithm
// in the rocket equation is undefined. The estimator publishes a delta-v of
// zero with Degenerate set instead of a non-finite value.
package deltav
