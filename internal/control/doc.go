// Package control provides the attitude controllers that decide, tick by tick,
// which way the RCS thrusters should push.
//
// Controllers implement [sim.Controller]. The command is a torque demand per
// axis in [-1, 1]:
//
//   - [PID]: per-axis rate damper toward a target angular velocity
//   - [Manual]: a fixed command, as if a key were held down
//   - [None]: no rotation command (translation only)
//
// # Usage
//
//	pid := control.NewPID(2.0, 0.0, 0.05, mgl64.Vec3{})
//	s := sim.New(craft, integrators.NewRK4(), pid, estimator)
//
// [PID] supports live tuning through GetParams and SetParam.
package control
