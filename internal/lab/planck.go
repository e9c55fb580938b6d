package lab

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/virtuallab/internal/anim"
	"github.com/san-kum/virtuallab/internal/circuit"
	"github.com/san-kum/virtuallab/internal/clock"
	"github.com/san-kum/virtuallab/internal/kinematics"
)

const (
	// SlideBase is how long the example rheostat slide takes at speed 1, in
	// milliseconds. The voltmeter reads 5.00 when it ends.
	SlideBase = 5000

	CaptionConnect      = "Connect the circuit"
	CaptionNotConnected = "Circuit not connected, try again"
	CaptionMeasure      = "Change the resistance of the variable resistor and measure the thresold voltage"
)

// exampleThresholds holds the voltages at which the example slide lights an
// LED where they differ from the measured thresholds in circuit.LEDs.
var exampleThresholds = map[float64]float64{
	450: 2.70,
}

var (
	SliderStart = mgl64.Vec2{180, 255}
	SliderEnd   = mgl64.Vec2{25, 255}
)

// Planck is the LED threshold voltage practical. In example mode a slider
// sweeps the voltage up from zero and the voltmeter doubles as the clock.
// In DIY mode the user wires the circuit and then sets the rheostat.
type Planck struct {
	scene
	lamp     *circuit.Lamp
	graph    *circuit.Graph
	rheostat int
}

func NewPlanck(mode Mode, opts ...Option) *Planck {
	o := buildOptions(opts)
	p := &Planck{
		scene:    newScene(PlanckConstant, mode, o, clock.WithSeparator(".")),
		rheostat: circuit.RheostatMax,
	}
	led, err := circuit.LookupLED(o.cfg.LED)
	if err != nil {
		led = circuit.LEDs[0]
	}
	p.lamp = p.newLamp(led)
	p.rest = SliderStart
	p.wire(o.cfg.Speed)
	p.onTick = p.observeClock
	if mode == DIY {
		p.graph = circuit.Default()
		p.state = BuildingCircuit
		p.caption = CaptionConnect
	} else {
		p.state = PlanckSetup
	}
	return p
}

// Still resets the apparatus with the given LED fitted. A slide prepared
// earlier stays loaded so it can be replayed with the new LED.
func (p *Planck) Still(state State, led circuit.LED) {
	p.scene.still(state, ledCaption(led))
	p.lamp = p.newLamp(led)
	p.rest = SliderStart
}

// Slide prepares the rheostat sweep. The motion is not started.
func (p *Planck) Slide(state State) {
	p.clock.Stop()
	p.state = state
	m := anim.NewMotion(SliderStart, SliderEnd, kinematics.Millis(SlideBase, p.speed))
	m.Easing = anim.Linear
	p.player.Load(m)
}

// Start runs the slide in example mode. In DIY mode it verifies the drawn
// circuit instead and locks the wiring once it is closed.
func (p *Planck) Start() error {
	if p.mode == DIY {
		return p.verify()
	}
	if p.active() {
		return p.err("start", ErrMotionActive)
	}
	if !p.player.Loaded() {
		return p.err("start", ErrNoMotion)
	}
	p.lamp.Reset()
	p.play(kinematics.Millis(SlideBase, p.speed))
	return nil
}

func (p *Planck) verify() error {
	if p.graph.Locked() {
		return nil
	}
	if !p.graph.IsClosed() {
		p.setCaption(CaptionNotConnected)
		return p.err("verify", ErrCircuitOpen)
	}
	p.graph.Lock()
	p.state = CircuitVerified
	p.setCaption(CaptionMeasure)
	p.observer.OnClock(p.Reading())
	return nil
}

// ResetTimer zeroes the voltmeter and darkens the LED.
func (p *Planck) ResetTimer() {
	p.scene.ResetTimer()
	p.lamp.Reset()
}

// ChangeLED fits the LED with wavelength nm.
func (p *Planck) ChangeLED(nm float64) error {
	led, err := circuit.LookupLED(nm)
	if err != nil {
		return p.err("change led", err)
	}
	p.ResetTimer()
	p.lamp = p.newLamp(led)
	if p.mode == DIY && p.Connected() {
		p.lamp.Observe(p.Voltage())
	}
	return nil
}

// SetRheostat moves the DIY rheostat to value in 0..RheostatMax. Lower
// values put more of the supply across the LED.
func (p *Planck) SetRheostat(value int) error {
	if p.mode != DIY {
		return p.err("rheostat", ErrWrongMode)
	}
	if value < 0 {
		value = 0
	}
	if value > circuit.RheostatMax {
		value = circuit.RheostatMax
	}
	p.rheostat = value
	if !p.Connected() {
		return p.err("rheostat", ErrCircuitOpen)
	}
	p.state = Measuring
	p.lamp.Observe(p.Voltage())
	p.observer.OnClock(p.Reading())
	return nil
}

func (p *Planck) Rheostat() int { return p.rheostat }

// Connected reports whether the DIY circuit has been verified.
func (p *Planck) Connected() bool {
	return p.graph != nil && p.graph.Locked()
}

// Voltage returns the voltmeter reading.
func (p *Planck) Voltage() float64 {
	if p.mode == DIY {
		if !p.Connected() {
			return 0
		}
		return circuit.RheostatVoltage(p.rheostat)
	}
	return p.clock.Value()
}

// Reading returns the voltmeter display.
func (p *Planck) Reading() string {
	if p.mode == DIY {
		return fmt.Sprintf("%.2f", p.Voltage())
	}
	return p.clock.Display()
}

func (p *Planck) Lamp() *circuit.Lamp { return p.lamp }

func (p *Planck) LED() circuit.LED { return p.lamp.LED() }

// Graph returns the DIY wiring graph, or nil in example mode.
func (p *Planck) Graph() *circuit.Graph { return p.graph }

func (p *Planck) BeginWire(pt mgl64.Vec2) error {
	if p.graph == nil {
		return p.err("wire", ErrWrongMode)
	}
	return p.graph.BeginWire(pt)
}

func (p *Planck) UpdateWire(pt mgl64.Vec2) {
	if p.graph != nil {
		p.graph.UpdateWire(pt)
	}
}

func (p *Planck) EndWire(pt mgl64.Vec2) (circuit.Wire, bool) {
	if p.graph == nil {
		return circuit.Wire{}, false
	}
	return p.graph.EndWire(pt)
}

// ClearWires removes every wire and returns to building the circuit.
func (p *Planck) ClearWires() {
	if p.graph == nil {
		return
	}
	p.graph.Clear()
	p.lamp.Reset()
	p.rheostat = circuit.RheostatMax
	p.state = BuildingCircuit
	p.setCaption(CaptionConnect)
}

func (p *Planck) IsCircuitClosed() bool {
	return p.graph != nil && p.graph.IsClosed()
}

func (p *Planck) Components() []circuit.Component {
	if p.graph == nil {
		return nil
	}
	return p.graph.Components()
}

func (p *Planck) newLamp(led circuit.LED) *circuit.Lamp {
	if v, ok := exampleThresholds[led.Wavelength]; ok && p.mode == Example {
		led.Threshold = v
	}
	return circuit.NewLamp(led)
}

func (p *Planck) observeClock() {
	if p.mode == Example {
		p.lamp.Observe(p.clock.Value())
	}
}

func ledCaption(led circuit.LED) string {
	return fmt.Sprintf("LED λ = %gnm", led.Wavelength)
}
