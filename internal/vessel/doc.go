// Package vessel describes the parts of a craft that the estimator reads.
//
// The kernel never owns the craft. It sees a [Snapshot] per tick:
//
//   - [Contributor]: a force-producing unit (an RCS block) with one or more
//     thrust vectors, an atmosphere Isp curve and the resource it burns
//   - [MassLookup] / [FlowLookup]: per-resource mass and flow mode
//   - the net vessel thrust and the total vessel mass
//
// Thrust vectors follow the build aid's drawing convention: they point along
// the exhaust and are scaled by thrust. The force applied to the vessel is
// the negated sum, see [NetThrust].
package vessel
