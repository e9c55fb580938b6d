package lab_test

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/virtuallab/internal/config"
	"github.com/san-kum/virtuallab/internal/kinematics"
	"github.com/san-kum/virtuallab/internal/lab"
	"github.com/san-kum/virtuallab/internal/sched"
)

type recorder struct {
	captions []string
	clocks   []string
	finished []lab.State
}

func (r *recorder) OnCaption(c string) { r.captions = append(r.captions, c) }

func (r *recorder) OnClock(d string) { r.clocks = append(r.clocks, d) }

func (r *recorder) OnFinished(s lab.State) { r.finished = append(r.finished, s) }

var _ = Describe("New", func() {
	It("builds each practical", func() {
		for _, p := range lab.Practicals {
			for _, mode := range []lab.Mode{lab.Example, lab.DIY} {
				m, err := lab.New(p, mode)
				Expect(err).NotTo(HaveOccurred())
				Expect(m.Practical()).To(Equal(p))
				Expect(m.Mode()).To(Equal(mode))
			}
		}
	})

	It("rejects unknown practicals and modes", func() {
		_, err := lab.New("pendulum", lab.Example)
		Expect(err).To(MatchError(lab.ErrUnknownPractical))

		_, err = lab.New(lab.VerticalDrop, lab.Mode(7))
		Expect(err).To(MatchError(lab.ErrUnknownMode))
	})

	It("parses names", func() {
		p, err := lab.ParsePractical(" Ramp ")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(lab.RampRoll))

		m, err := lab.ParseMode("diy")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(Equal(lab.DIY))

		_, err = lab.ParseMode("sandbox")
		Expect(err).To(MatchError(lab.ErrUnknownMode))
	})
})

var _ = Describe("Vertical example", func() {
	var (
		s   *sched.Scheduler
		rec *recorder
		v   *lab.Vertical
	)

	BeforeEach(func() {
		s = sched.New()
		rec = &recorder{}
		v = lab.NewVertical(lab.Example, lab.WithScheduler(s), lab.WithObserver(rec))
		v.Still(lab.Setup1, 250, "Distance = 0.5m")
	})

	It("rests the ball with a zeroed clock", func() {
		Expect(v.State()).To(Equal(lab.Setup1))
		Expect(v.Position()).To(Equal(mgl64.Vec2{100, 250}))
		Expect(v.Clock().Display()).To(Equal("0:00"))
		Expect(rec.captions).To(ContainElement("Distance = 0.5m"))
	})

	It("refuses to start without a prepared drop", func() {
		Expect(v.Start()).To(MatchError(lab.ErrNoMotion))
	})

	It("does not start a prepared drop until asked", func() {
		v.Drop(250, lab.Dropping1, 320, "Distance = 0.5m")
		s.Advance(time.Second)

		Expect(v.Running()).To(BeFalse())
		Expect(v.Position()).To(Equal(mgl64.Vec2{100, 250}))
	})

	Context("once dropped", func() {
		BeforeEach(func() {
			v.Drop(250, lab.Dropping1, 320, "Distance = 0.5m")
			Expect(v.Start()).To(Succeed())
		})

		It("lands after the scripted time with the clock matching", func() {
			s.Advance(319 * time.Millisecond)
			Expect(v.Running()).To(BeTrue())

			s.Advance(time.Millisecond)
			Expect(v.Running()).To(BeFalse())
			Expect(v.Clock().Display()).To(Equal("0:32"))
			Expect(v.Clock().Running()).To(BeFalse())
			Expect(v.Position()).To(Equal(lab.VerticalExampleEnd))
			Expect(rec.finished).To(Equal([]lab.State{lab.Dropping1}))
			Expect(v.State()).To(Equal(lab.Dropping1))
		})

		It("rejects a second start while moving", func() {
			Expect(v.Start()).To(MatchError(lab.ErrMotionActive))
			v.Pause()
			Expect(v.Start()).To(MatchError(lab.ErrMotionActive))
		})

		It("keeps ticks and progress across pause and resume", func() {
			s.Advance(100 * time.Millisecond)
			v.Pause()
			pos := v.Position()
			s.Advance(time.Hour)

			Expect(v.Clock().Ticks()).To(Equal(10))
			Expect(v.Position()).To(Equal(pos))
			Expect(v.Paused()).To(BeTrue())

			v.Resume()
			s.Advance(220 * time.Millisecond)
			Expect(v.Running()).To(BeFalse())
			Expect(v.Clock().Ticks()).To(Equal(32))
		})

		It("keeps the clock in step with a pause in the middle of a tick", func() {
			s.Advance(105 * time.Millisecond)
			v.Pause()
			s.Advance(time.Minute)
			v.Resume()
			s.Advance(time.Second)

			Expect(v.Running()).To(BeFalse())
			Expect(v.Clock().Display()).To(Equal("0:32"))
			Expect(v.Position()).To(Equal(lab.VerticalExampleEnd))
		})

		It("restarts a paused clock from zero after a reset", func() {
			s.Advance(105 * time.Millisecond)
			v.Pause()
			v.ResetTimer()
			v.Resume()
			s.Advance(time.Second)

			Expect(v.Clock().Ticks()).To(Equal(22))
		})

		It("treats repeated pause and resume as a single pair", func() {
			s.Advance(100 * time.Millisecond)
			v.Pause()
			v.Pause()
			v.Resume()
			v.Resume()
			v.Pause()
			v.Resume()
			s.Advance(50 * time.Millisecond)

			Expect(v.Clock().Ticks()).To(Equal(15))
		})

		It("restarts from the top when started again after landing", func() {
			s.Advance(time.Second)
			Expect(v.Start()).To(Succeed())
			Expect(v.Clock().Ticks()).To(Equal(0))
			Expect(v.Position()).To(Equal(mgl64.Vec2{100, 250}))
		})

		It("stops the drop when returned to rest", func() {
			s.Advance(100 * time.Millisecond)
			v.Still(lab.Setup2, 0, "Distance = 1m")

			Expect(v.Running()).To(BeFalse())
			Expect(v.Clock().Display()).To(Equal("0:00"))
			s.Advance(time.Second)
			Expect(rec.finished).To(BeEmpty())
		})
	})

	It("scales both clock and motion by the speed factor", func() {
		v.ChangeSpeed(5)
		Expect(v.Speed()).To(Equal(5))
		v.Drop(250, lab.Dropping1, 320, "Distance = 0.5m")
		Expect(v.Start()).To(Succeed())

		s.Advance(1599 * time.Millisecond)
		Expect(v.Running()).To(BeTrue())
		s.Advance(time.Millisecond)
		Expect(v.Running()).To(BeFalse())
		Expect(v.Clock().Display()).To(Equal("0:32"))
	})

	It("applies a speed change on the next resume only", func() {
		v.Drop(250, lab.Dropping1, 320, "Distance = 0.5m")
		Expect(v.Start()).To(Succeed())
		s.Advance(100 * time.Millisecond)

		v.ChangeSpeed(8)
		s.Advance(50 * time.Millisecond)
		Expect(v.Clock().Ticks()).To(Equal(15))

		v.Pause()
		v.Resume()
		s.Advance(20 * time.Millisecond)
		Expect(v.Clock().Ticks()).To(Equal(16))
	})

	It("resets the timer on request", func() {
		v.Drop(250, lab.Dropping1, 320, "Distance = 0.5m")
		Expect(v.Start()).To(Succeed())
		s.Advance(50 * time.Millisecond)
		v.Pause()
		v.ResetTimer()
		Expect(v.Clock().Display()).To(Equal("0:00"))
	})

	It("does not let the ball be moved", func() {
		Expect(v.MoveBall(mgl64.Vec2{0, 0})).To(MatchError(lab.ErrWrongMode))
	})
})

var _ = Describe("Vertical DIY", func() {
	var (
		s *sched.Scheduler
		v *lab.Vertical
	)

	BeforeEach(func() {
		s = sched.New()
		v = lab.NewVertical(lab.DIY, lab.WithScheduler(s))
	})

	It("starts with the ball one metre up", func() {
		Expect(v.Ball()).To(Equal(lab.VerticalDIYStart))
		Expect(v.Height()).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("times the fall from where the ball is when started", func() {
		Expect(v.MoveBall(mgl64.Vec2{40, 465 - 4.905*503})).To(Succeed())
		Expect(v.Units()).To(BeNumerically("~", 1.0, 1e-9))
		Expect(v.Start()).To(Succeed())
		Expect(v.State()).To(Equal(lab.Dropping1))

		m, ok := v.Motion()
		Expect(ok).To(BeTrue())
		Expect(m.End).To(Equal(mgl64.Vec2{40, 465}))
		Expect(m.Duration).To(Equal(time.Second))

		s.Advance(time.Second)
		Expect(v.State()).To(Equal(lab.Setup1))
		Expect(v.Ball()).To(Equal(mgl64.Vec2{40, 465}))
		Expect(v.Clock().Display()).To(Equal("1:00"))
	})

	It("clamps a zero height drop to one second", func() {
		Expect(v.MoveBall(mgl64.Vec2{0, 465})).To(Succeed())
		Expect(v.Start()).To(Succeed())

		m, _ := v.Motion()
		Expect(m.Duration).To(Equal(time.Second))
	})

	It("keeps the ball still while it falls", func() {
		Expect(v.Start()).To(Succeed())
		Expect(v.MoveBall(mgl64.Vec2{0, 0})).To(MatchError(lab.ErrMotionActive))
	})

	It("uses the configured gravity", func() {
		cfg := config.DefaultConfig()
		cfg.Physics.Gravity = 9.81 / 4
		moon := lab.NewVertical(lab.DIY, lab.WithConfig(cfg))

		Expect(moon.Units()).To(BeNumerically("~", 2*v.Units(), 1e-9))
	})
})

var _ = Describe("Ramp", func() {
	It("rolls the example ball to the foot of the ramp", func() {
		s := sched.New()
		r := lab.NewRamp(lab.Example, lab.WithScheduler(s))
		r.Still(lab.Setup1, mgl64.Vec2{200, 83}, "Ramp Length = 0.5m, θ = 30°")
		r.Drop(mgl64.Vec2{200, 83}, lab.Dropping1, 452, "Ramp Length = 0.5m, θ = 30°")
		Expect(r.Start()).To(Succeed())

		s.Advance(452 * time.Millisecond)
		Expect(r.Running()).To(BeFalse())
		Expect(r.Position()).To(Equal(lab.RampExampleEnd))
		Expect(r.Clock().Display()).To(Equal("0:45"))
	})

	It("times a DIY roll along the incline", func() {
		s := sched.New()
		r := lab.NewRamp(lab.DIY, lab.WithScheduler(s))
		Expect(r.Ball()).To(Equal(lab.RampDIYStart))

		want := kinematics.Scheduled(r.Units(), 1)
		Expect(r.Start()).To(Succeed())

		m, _ := r.Motion()
		Expect(m.Duration).To(Equal(want))
		Expect(m.End).To(Equal(lab.RampDIYEnd))

		s.Advance(want)
		Expect(r.Ball()).To(Equal(lab.RampDIYEnd))
		Expect(r.State()).To(Equal(lab.Setup1))
	})
})
