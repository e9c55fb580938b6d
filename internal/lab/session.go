package lab

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/virtuallab/internal/circuit"
)

// Labels of the single control button.
const (
	LabelStartExample   = "Start Example"
	LabelStartPractical = "Start Practical"
	LabelStart          = "Start Animation"
	LabelPause          = "Pause Animation"
	LabelResume         = "Resume Animation"
	LabelNext           = "Next"
)

// Captions and instructions of the scripted walkthroughs.
const (
	CaptionHalfMetre   = "Distance = 0.5m"
	CaptionOneMetre    = "Distance = 1m"
	CaptionRampHalf    = "Ramp Length = 0.5m, θ = 30°"
	CaptionRampOne     = "Ramp Length = 1m, θ = 30°"
	InstructMeasure    = "Measure the Distance of the Drop"
	InstructDrop       = "Drop Ball and Start Timer"
	InstructRepeat     = "Repeat at different heights"
	InstructDropAgain  = "Drop Ball from second height and start Timer"
	InstructRampLength = "Measure the Distance of the Drop along the ramp"
	InstructRoll       = "Roll Ball and Start Timer"
	InstructRampRepeat = "Repeat at another length up the Ramp"
	InstructRollAgain  = "Roll Ball from second length and start Timer"
	InstructCircuit    = "Set up Circuit with LED in series with a variable resistor"
	InstructThreshold  = "Turn down resistance and measure voltage when LED lights up"
	InstructNextLED    = "Repeat with a different coloured LED"
	InstructDIYDrop    = "Measure the Distance of the Drop from the bottom of the ball and enter the time measured"
)

// Scripted drop geometry: resting scene position and duration at speed 1.
const (
	verticalFirstY   = 250.0
	verticalSecondY  = 0.0
	verticalFirstMs  = 320.0
	verticalSecondMs = 450.0
	rampFirstMs      = 452.0
	rampSecondMs     = 640.0
	firstLED         = 700.0
	secondLED        = 450.0
)

var (
	rampFirst  = mgl64.Vec2{200, 83}
	rampSecond = mgl64.Vec2{395, -30}
)

// Session walks a user through one practical the way the lab window does:
// it owns the instruction text and the label of the control button and
// maps Next, Prev and button presses onto the machine.
type Session struct {
	m           Machine
	label       string
	instruction string
}

func NewSession(m Machine) *Session {
	s := &Session{m: m, label: LabelStartExample}
	if m.Mode() == DIY {
		s.label = LabelStartPractical
	}
	return s
}

func (s *Session) Machine() Machine { return s.m }

func (s *Session) Instruction() string { return s.instruction }

// Control returns the label of the control button. A run that finished on
// its own puts the label back to start.
func (s *Session) Control() string {
	if s.label == LabelPause && !s.m.Running() && !s.m.Paused() {
		s.label = LabelStart
	}
	return s.label
}

// Begin shows the first step of the practical.
func (s *Session) Begin() {
	s.label = LabelStart
	if s.m.Mode() == DIY {
		if s.m.Practical() == PlanckConstant {
			s.instruction = CaptionConnect
		} else {
			s.instruction = InstructDIYDrop
		}
		return
	}
	switch m := s.m.(type) {
	case *Vertical:
		m.Still(Setup1, verticalFirstY, CaptionHalfMetre)
		s.instruction = InstructMeasure
	case *Ramp:
		m.Still(Setup1, rampFirst, CaptionRampHalf)
		s.instruction = InstructRampLength
	case *Planck:
		m.Still(PlanckSetup, mustLED(firstLED))
		s.instruction = InstructCircuit
	}
}

// Next moves the example one step forward. It reports false when there is
// no further step.
func (s *Session) Next() bool {
	if s.m.Mode() == DIY {
		return false
	}
	switch m := s.m.(type) {
	case *Vertical:
		switch m.State() {
		case Setup1:
			s.step(InstructDrop)
			m.Drop(verticalFirstY, Dropping1, verticalFirstMs, CaptionHalfMetre)
		case Dropping1:
			m.Still(Setup2, verticalSecondY, CaptionOneMetre)
			s.step(InstructRepeat)
		case Setup2:
			m.Drop(verticalSecondY, Dropping2, verticalSecondMs, CaptionOneMetre)
			s.step(InstructDropAgain)
		default:
			return false
		}
	case *Ramp:
		switch m.State() {
		case Setup1:
			m.Drop(rampFirst, Dropping1, rampFirstMs, CaptionRampHalf)
			s.step(InstructRoll)
		case Dropping1:
			m.Still(Setup2, rampSecond, CaptionRampOne)
			s.step(InstructRampRepeat)
		case Setup2:
			m.Drop(rampSecond, Dropping2, rampSecondMs, CaptionRampOne)
			s.step(InstructRollAgain)
		default:
			return false
		}
	case *Planck:
		switch m.State() {
		case PlanckSetup:
			m.Slide(Sliding)
			s.step(InstructThreshold)
		case Sliding:
			m.Still(PlanckSetup2, mustLED(secondLED))
			s.step(InstructNextLED)
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// Prev moves the example one step back. It reports false at the first step.
func (s *Session) Prev() bool {
	if s.m.Mode() == DIY {
		return false
	}
	switch m := s.m.(type) {
	case *Vertical:
		switch m.State() {
		case Dropping1:
			m.Still(Setup1, verticalFirstY, CaptionHalfMetre)
			s.step(InstructMeasure)
		case Setup2:
			m.Drop(verticalFirstY, Dropping1, verticalFirstMs, CaptionHalfMetre)
			s.step(InstructDrop)
		case Dropping2:
			m.Still(Setup2, verticalSecondY, CaptionOneMetre)
			s.step(InstructRepeat)
		default:
			return false
		}
	case *Ramp:
		switch m.State() {
		case Dropping1:
			m.Still(Setup1, rampFirst, CaptionRampHalf)
			s.step(InstructRampLength)
		case Setup2:
			m.Drop(rampFirst, Dropping1, rampFirstMs, CaptionRampHalf)
			s.step(InstructRoll)
		case Dropping2:
			m.Still(Setup2, rampSecond, CaptionRampOne)
			s.step(InstructRampRepeat)
		default:
			return false
		}
	case *Planck:
		switch m.State() {
		case Sliding:
			m.Still(PlanckSetup, mustLED(firstLED))
			s.step(InstructCircuit)
		case PlanckSetup2:
			m.Still(Sliding, mustLED(firstLED))
			s.step(InstructThreshold)
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// Press acts on the control button according to its current label.
func (s *Session) Press() error {
	switch s.Control() {
	case LabelStartExample, LabelStartPractical:
		s.Begin()
		return nil
	case LabelPause:
		s.m.Pause()
		s.label = LabelResume
		return nil
	case LabelResume:
		s.m.Resume()
		s.label = LabelPause
		return nil
	case LabelStart:
		return s.start()
	}
	return nil
}

func (s *Session) start() error {
	if p, ok := s.m.(*Planck); ok && p.Mode() == DIY {
		err := p.Start()
		if errors.Is(err, ErrCircuitOpen) {
			s.instruction = CaptionNotConnected
			return err
		}
		if err != nil {
			return err
		}
		s.label = LabelNext
		s.instruction = CaptionMeasure
		return nil
	}
	if s.m.Mode() == Example && !s.m.State().Playable() {
		return nil
	}
	if err := s.m.Start(); err != nil {
		return err
	}
	s.label = LabelPause
	return nil
}

// ClearWires removes the drawn circuit and starts the wiring step again.
func (s *Session) ClearWires() {
	p, ok := s.m.(*Planck)
	if !ok || p.Mode() != DIY {
		return
	}
	p.ClearWires()
	s.label = LabelStart
	s.instruction = CaptionConnect
}

func (s *Session) step(instruction string) {
	s.instruction = instruction
	s.label = LabelStart
}

func mustLED(nm float64) circuit.LED {
	led, err := circuit.LookupLED(nm)
	if err != nil {
		panic(err)
	}
	return led
}
