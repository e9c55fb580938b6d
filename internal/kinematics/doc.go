// Package kinematics derives animation durations from the geometry the user
// sets up in a practical.
//
// Each practical uses one fixed, hand-derived law rather than a numerical
// integrator:
//
//   - [FreeFall]: t = sqrt(2h / g) for a ball dropped from rest
//   - [Incline]: t = sqrt(2d / (g sin θ)) for a ball rolling down a ramp
//
// Both models measure the ball's scene position against a fixed reference
// and convert scene units to metres with a shared scale. A computed time of
// exactly zero is clamped to one unit so an animation never has zero length.
//
// Models implement GetParams/SetParam for runtime adjustment:
//
//	ff := kinematics.NewFreeFall()
//	units := ff.Units(ball)
//	d := kinematics.Scheduled(units, kinematics.SpeedFactor(raw))
package kinematics
