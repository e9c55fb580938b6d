package circuit

import (
	"errors"
	"fmt"
	"math"
)

const (
	// SupplyVoltage is the voltage across the LED with the rheostat at zero.
	SupplyVoltage = 5.0
	RheostatMax   = 500

	// GlowSteps is the number of brightness steps between off and full.
	GlowSteps = 51

	// DimWindow is how far above threshold a falling reading may be before
	// the LED starts to dim.
	DimWindow = 1.53
)

var ErrUnknownLED = errors.New("circuit: no LED with that wavelength")

// LED describes one of the practical's light emitting diodes.
type LED struct {
	Wavelength float64 // nm
	Threshold  float64 // V
	// Step is how much each of r, g, b falls from 255 per glow step.
	Step [3]float64
}

// LEDs is ordered from longest to shortest wavelength.
var LEDs = []LED{
	{Wavelength: 700, Threshold: 1.70, Step: [3]float64{0, 5, 5}},
	{Wavelength: 630, Threshold: 1.95, Step: [3]float64{0, 2, 5}},
	{Wavelength: 580, Threshold: 2.10, Step: [3]float64{0, 0, 5}},
	{Wavelength: 520, Threshold: 2.35, Step: [3]float64{5, 0, 5}},
	{Wavelength: 450, Threshold: 2.75, Step: [3]float64{5, 5, 0}},
	{Wavelength: 420, Threshold: 2.90, Step: [3]float64{2, 5, 0}},
	{Wavelength: 380, Threshold: 3.20, Step: [3]float64{4.5, 5, 4}},
}

func LookupLED(nm float64) (LED, error) {
	for _, led := range LEDs {
		if led.Wavelength == nm {
			return led, nil
		}
	}
	return LED{}, fmt.Errorf("%w: %g nm", ErrUnknownLED, nm)
}

// RheostatVoltage returns the reading across the LED for a rheostat setting
// in 0..RheostatMax, rounded to hundredths. Out of range settings are clamped.
func RheostatVoltage(value int) float64 {
	if value < 0 {
		value = 0
	}
	if value > RheostatMax {
		value = RheostatMax
	}
	v := SupplyVoltage - float64(value)/100
	return math.Round(v*100) / 100
}

// Lamp tracks how brightly an LED glows as the voltage across it changes.
// It brightens one step per rising reading at or above threshold and dims
// one step per falling reading within DimWindow of threshold.
type Lamp struct {
	led   LED
	level int
	last  float64
}

func NewLamp(led LED) *Lamp {
	return &Lamp{led: led}
}

func (l *Lamp) LED() LED { return l.led }

// Observe feeds the lamp a new voltage reading.
func (l *Lamp) Observe(v float64) {
	switch {
	case v > l.last && v >= l.led.Threshold:
		if l.level < GlowSteps {
			l.level++
		}
	case v < l.last && v <= l.led.Threshold+DimWindow:
		if l.level > 0 {
			l.level--
		}
	}
	l.last = v
}

func (l *Lamp) Reset() {
	l.level = 0
	l.last = 0
}

func (l *Lamp) Lit() bool { return l.level > 0 }

func (l *Lamp) Level() int { return l.level }

// Colour returns the rendered rgb of the lamp. An unlit lamp is white.
func (l *Lamp) Colour() (r, g, b uint8) {
	ch := func(step float64) uint8 {
		c := 255 - float64(l.level)*step
		if c < 0 {
			c = 0
		}
		return uint8(math.Round(c))
	}
	return ch(l.led.Step[0]), ch(l.led.Step[1]), ch(l.led.Step[2])
}
