package lab_test

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/virtuallab/internal/circuit"
	"github.com/san-kum/virtuallab/internal/lab"
	"github.com/san-kum/virtuallab/internal/sched"
)

func led(nm float64) circuit.LED {
	l, err := circuit.LookupLED(nm)
	Expect(err).NotTo(HaveOccurred())
	return l
}

var _ = Describe("Planck example", func() {
	var (
		s   *sched.Scheduler
		rec *recorder
		p   *lab.Planck
	)

	BeforeEach(func() {
		s = sched.New()
		rec = &recorder{}
		p = lab.NewPlanck(lab.Example, lab.WithScheduler(s), lab.WithObserver(rec))
		p.Still(lab.PlanckSetup, led(700))
	})

	It("reads the voltmeter with a decimal point", func() {
		Expect(p.Reading()).To(Equal("0.00"))
		Expect(p.Position()).To(Equal(lab.SliderStart))
	})

	It("sweeps to five volts and lights the LED past its threshold", func() {
		p.Slide(lab.Sliding)
		Expect(p.Start()).To(Succeed())

		s.Advance(1690 * time.Millisecond)
		Expect(p.Reading()).To(Equal("1.69"))
		Expect(p.Lamp().Lit()).To(BeFalse())

		s.Advance(10 * time.Millisecond)
		Expect(p.Lamp().Lit()).To(BeTrue())

		s.Advance(lab.SlideBase * time.Millisecond)
		Expect(p.Running()).To(BeFalse())
		Expect(p.Reading()).To(Equal("5.00"))
		Expect(p.Position()).To(Equal(lab.SliderEnd))
		Expect(p.Lamp().Level()).To(Equal(circuit.GlowSteps))
		Expect(rec.clocks).To(ContainElement("2.50"))
	})

	It("replays the slide with a different LED", func() {
		p.Slide(lab.Sliding)
		Expect(p.Start()).To(Succeed())
		s.Advance(lab.SlideBase * time.Millisecond)

		p.Still(lab.PlanckSetup2, led(450))
		Expect(p.Lamp().Lit()).To(BeFalse())
		Expect(p.Reading()).To(Equal("0.00"))

		Expect(p.LED().Threshold).To(Equal(2.70))
		Expect(p.Start()).To(Succeed())
		s.Advance(2690 * time.Millisecond)
		Expect(p.Lamp().Lit()).To(BeFalse())
		s.Advance(10 * time.Millisecond)
		Expect(p.Lamp().Lit()).To(BeTrue())
	})

	It("needs a slide before it can start", func() {
		Expect(p.Start()).To(MatchError(lab.ErrNoMotion))
	})

	It("changes LED and darkens the lamp", func() {
		Expect(p.ChangeLED(520)).To(Succeed())
		Expect(p.LED().Wavelength).To(Equal(520.0))
		Expect(p.ChangeLED(521)).To(MatchError(circuit.ErrUnknownLED))
	})

	It("offers no wiring", func() {
		Expect(p.BeginWire(mgl64.Vec2{0, 0})).To(MatchError(lab.ErrWrongMode))
		Expect(p.SetRheostat(100)).To(MatchError(lab.ErrWrongMode))
		Expect(p.Graph()).To(BeNil())
	})
})

var _ = Describe("Planck DIY", func() {
	var (
		rec *recorder
		p   *lab.Planck
	)

	wireAll := func() {
		g := p.Graph()
		for _, e := range g.Edges() {
			w := g.WireFor(e[0], e[1])
			Expect(p.BeginWire(w.From)).To(Succeed())
			p.UpdateWire(w.To)
			_, ok := p.EndWire(w.To)
			Expect(ok).To(BeTrue())
		}
	}

	BeforeEach(func() {
		rec = &recorder{}
		p = lab.NewPlanck(lab.DIY, lab.WithObserver(rec))
	})

	It("starts by building the circuit", func() {
		Expect(p.State()).To(Equal(lab.BuildingCircuit))
		Expect(p.Components()).To(HaveLen(10))
		Expect(p.Voltage()).To(Equal(0.0))
	})

	It("reports an open circuit and stays recoverable", func() {
		err := p.Start()
		Expect(err).To(MatchError(lab.ErrCircuitOpen))

		var stepErr *lab.StepError
		Expect(err).To(BeAssignableToTypeOf(stepErr))
		Expect(p.Caption()).To(Equal(lab.CaptionNotConnected))
		Expect(p.State()).To(Equal(lab.BuildingCircuit))

		wireAll()
		Expect(p.Start()).To(Succeed())
		Expect(p.State()).To(Equal(lab.CircuitVerified))
	})

	It("refuses the rheostat until connected", func() {
		Expect(p.SetRheostat(100)).To(MatchError(lab.ErrCircuitOpen))
	})

	Context("once verified", func() {
		BeforeEach(func() {
			wireAll()
			Expect(p.IsCircuitClosed()).To(BeTrue())
			Expect(p.Start()).To(Succeed())
		})

		It("locks the wiring", func() {
			Expect(p.BeginWire(mgl64.Vec2{0, 0})).To(MatchError(circuit.ErrLocked))
			Expect(p.Caption()).To(Equal(lab.CaptionMeasure))
			Expect(rec.clocks).To(ContainElement("0.00"))
		})

		It("measures the voltage set by the rheostat", func() {
			Expect(p.SetRheostat(130)).To(Succeed())
			Expect(p.State()).To(Equal(lab.Measuring))
			Expect(p.Voltage()).To(Equal(3.70))
			Expect(p.Reading()).To(Equal("3.70"))
			Expect(p.Lamp().Lit()).To(BeTrue())
		})

		It("uses the measured threshold for the 450nm LED", func() {
			Expect(p.ChangeLED(450)).To(Succeed())
			Expect(p.LED().Threshold).To(Equal(2.75))
		})

		It("keeps the lamp dark below threshold", func() {
			Expect(p.ChangeLED(380)).To(Succeed())
			Expect(p.SetRheostat(190)).To(Succeed())
			Expect(p.Reading()).To(Equal("3.10"))
			Expect(p.Lamp().Lit()).To(BeFalse())

			Expect(p.SetRheostat(180)).To(Succeed())
			Expect(p.Lamp().Lit()).To(BeTrue())
		})

		It("clears back to an unconnected circuit", func() {
			p.ClearWires()
			Expect(p.State()).To(Equal(lab.BuildingCircuit))
			Expect(p.Connected()).To(BeFalse())
			Expect(p.IsCircuitClosed()).To(BeFalse())
			Expect(p.Rheostat()).To(Equal(circuit.RheostatMax))
			Expect(p.BeginWire(mgl64.Vec2{0, 0})).To(Succeed())
		})
	})
})
