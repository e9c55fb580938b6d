package lab_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/virtuallab/internal/lab"
	"github.com/san-kum/virtuallab/internal/sched"
)

var _ = Describe("Session", func() {
	newSession := func(p lab.Practical, mode lab.Mode) (*lab.Session, *sched.Scheduler) {
		s := sched.New()
		m, err := lab.New(p, mode, lab.WithScheduler(s))
		Expect(err).NotTo(HaveOccurred())
		return lab.NewSession(m), s
	}

	It("walks the vertical example forward and back", func() {
		sess, _ := newSession(lab.VerticalDrop, lab.Example)
		Expect(sess.Control()).To(Equal(lab.LabelStartExample))

		Expect(sess.Press()).To(Succeed())
		Expect(sess.Instruction()).To(Equal(lab.InstructMeasure))
		Expect(sess.Control()).To(Equal(lab.LabelStart))

		var states []lab.State
		for sess.Next() {
			states = append(states, sess.Machine().State())
		}
		Expect(states).To(Equal([]lab.State{lab.Dropping1, lab.Setup2, lab.Dropping2}))
		Expect(sess.Instruction()).To(Equal(lab.InstructDropAgain))

		states = nil
		for sess.Prev() {
			states = append(states, sess.Machine().State())
		}
		Expect(states).To(Equal([]lab.State{lab.Setup2, lab.Dropping1, lab.Setup1}))
		Expect(sess.Instruction()).To(Equal(lab.InstructMeasure))
	})

	It("cycles the control label through a drop", func() {
		sess, s := newSession(lab.VerticalDrop, lab.Example)
		sess.Begin()

		Expect(sess.Press()).To(Succeed())
		Expect(sess.Machine().Running()).To(BeFalse(), "no drop in the setup state")

		sess.Next()
		Expect(sess.Press()).To(Succeed())
		Expect(sess.Control()).To(Equal(lab.LabelPause))

		Expect(sess.Press()).To(Succeed())
		Expect(sess.Control()).To(Equal(lab.LabelResume))
		Expect(sess.Machine().Paused()).To(BeTrue())

		Expect(sess.Press()).To(Succeed())
		Expect(sess.Control()).To(Equal(lab.LabelPause))

		s.Advance(time.Second)
		Expect(sess.Control()).To(Equal(lab.LabelStart))
		Expect(sess.Machine().Clock().Display()).To(Equal("0:32"))
	})

	It("walks the ramp example", func() {
		sess, _ := newSession(lab.RampRoll, lab.Example)
		sess.Begin()
		Expect(sess.Machine().Caption()).To(Equal(lab.CaptionRampHalf))

		Expect(sess.Next()).To(BeTrue())
		Expect(sess.Instruction()).To(Equal(lab.InstructRoll))
		Expect(sess.Next()).To(BeTrue())
		Expect(sess.Machine().Caption()).To(Equal(lab.CaptionRampOne))
		Expect(sess.Next()).To(BeTrue())
		Expect(sess.Next()).To(BeFalse())
	})

	It("walks the Planck example and swaps LEDs", func() {
		sess, s := newSession(lab.PlanckConstant, lab.Example)
		sess.Begin()
		p := sess.Machine().(*lab.Planck)
		Expect(p.LED().Wavelength).To(Equal(700.0))

		Expect(sess.Next()).To(BeTrue())
		Expect(p.State()).To(Equal(lab.Sliding))
		Expect(sess.Press()).To(Succeed())
		s.Advance(lab.SlideBase * time.Millisecond)
		Expect(p.Reading()).To(Equal("5.00"))

		Expect(sess.Next()).To(BeTrue())
		Expect(p.State()).To(Equal(lab.PlanckSetup2))
		Expect(p.LED().Wavelength).To(Equal(450.0))
		Expect(sess.Instruction()).To(Equal(lab.InstructNextLED))
		Expect(sess.Next()).To(BeFalse())

		Expect(sess.Press()).To(Succeed())
		Expect(p.Running()).To(BeTrue())

		Expect(sess.Prev()).To(BeTrue())
		Expect(p.State()).To(Equal(lab.Sliding))
		Expect(p.Running()).To(BeFalse())
		Expect(p.LED().Wavelength).To(Equal(700.0))
	})

	It("verifies the DIY circuit from the control button", func() {
		sess, _ := newSession(lab.PlanckConstant, lab.DIY)
		Expect(sess.Control()).To(Equal(lab.LabelStartPractical))
		Expect(sess.Press()).To(Succeed())
		Expect(sess.Instruction()).To(Equal(lab.CaptionConnect))

		Expect(sess.Press()).To(MatchError(lab.ErrCircuitOpen))
		Expect(sess.Instruction()).To(Equal(lab.CaptionNotConnected))

		p := sess.Machine().(*lab.Planck)
		g := p.Graph()
		for _, e := range g.Edges() {
			g.Register(g.WireFor(e[0], e[1]))
		}
		Expect(sess.Press()).To(Succeed())
		Expect(sess.Control()).To(Equal(lab.LabelNext))
		Expect(sess.Instruction()).To(Equal(lab.CaptionMeasure))

		sess.ClearWires()
		Expect(sess.Control()).To(Equal(lab.LabelStart))
		Expect(p.State()).To(Equal(lab.BuildingCircuit))
	})

	It("drops the DIY ball repeatedly without stepping", func() {
		sess, s := newSession(lab.VerticalDrop, lab.DIY)
		sess.Begin()
		Expect(sess.Instruction()).To(Equal(lab.InstructDIYDrop))
		Expect(sess.Next()).To(BeFalse())

		Expect(sess.Press()).To(Succeed())
		Expect(sess.Machine().State()).To(Equal(lab.Dropping1))
		s.Advance(time.Second)
		Expect(sess.Control()).To(Equal(lab.LabelStart))
		Expect(sess.Machine().State()).To(Equal(lab.Setup1))

		Expect(sess.Press()).To(Succeed())
		Expect(sess.Machine().Running()).To(BeTrue())
	})
})
