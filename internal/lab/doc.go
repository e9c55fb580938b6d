// Package lab drives the three practicals: a ball dropped vertically, a
// ball rolled down a ramp and the LED threshold voltage circuit used to
// estimate Planck's constant.
//
// Each practical is a state machine built with [New]:
//
//   - [Vertical]: Setup1 → Dropping1 → Setup2 → Dropping2
//   - [Ramp]: the same four states on an inclined plane
//   - [Planck]: PlanckSetup → Sliding → PlanckSetup2 in example mode,
//     BuildingCircuit → CircuitVerified → Measuring in DIY mode
//
// A machine owns a [clock.Clock] and an [anim.Player] sharing one
// [sched.Scheduler]. Captions and clock readings are pushed to an
// [Observer]. [Session] layers the step-by-step walkthrough on top,
// tracking the instruction text and the label of the single control
// button.
//
// # Example
//
//	s := sched.New()
//	m, _ := lab.New(lab.VerticalDrop, lab.Example, lab.WithScheduler(s))
//	sess := lab.NewSession(m)
//	sess.Begin()
//	sess.Next()  // ball ready to drop
//	sess.Press() // "Pause Animation"
//	s.Advance(time.Second)
//	m.Clock().Display() // "0:32"
//
// # Thread Safety
//
// Machines are NOT safe for concurrent use. Every call, including the
// scheduler's callbacks, must happen on one goroutine.
package lab
