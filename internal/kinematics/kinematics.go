package kinematics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	Gravity = 9.81

	// Scale is the number of scene units in one metre.
	Scale = 503.0

	// FloorY is the scene Y the ball lands on in the vertical practical.
	FloorY = 465.0

	MinSpeed = 1
	MaxSpeed = 10
)

// RampFoot is the bottom of the ramp in scene coordinates.
var RampFoot = mgl64.Vec2{-100, 455}

var ErrUnknownParam = errors.New("kinematics: unknown parameter")

// FallTime returns sqrt(2h/g), clamped to 1 when the result is exactly zero.
// Negative heights count as zero.
func FallTime(h, g float64) float64 {
	if h < 0 {
		h = 0
	}
	return clamp(math.Sqrt(2 * h / g))
}

// InclineTime returns sqrt(2d/(g sin θ)) for an incline at angle radians,
// with the same zero clamp as FallTime.
func InclineTime(d, g, angle float64) float64 {
	if d < 0 {
		d = 0
	}
	return clamp(math.Sqrt(2 * d / (g * math.Sin(angle))))
}

func clamp(units float64) float64 {
	if units == 0 {
		return 1
	}
	return units
}

// SpeedFactor maps the raw speed slider value to the factor applied to tick
// and animation durations. Lower raw values are slower. The endpoints use
// 11-v and everything between uses 10-v, so raw 9 and raw 10 both give 1.
func SpeedFactor(raw int) int {
	if raw < MinSpeed {
		raw = MinSpeed
	}
	if raw > MaxSpeed {
		raw = MaxSpeed
	}
	if raw == MinSpeed || raw == MaxSpeed {
		return 11 - raw
	}
	return 10 - raw
}

// Scheduled converts a duration in physical seconds to the virtual time the
// animation runs for at the given speed factor.
func Scheduled(units float64, speedFactor int) time.Duration {
	ms := units * 1000 * float64(speedFactor)
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}

// Millis is Scheduled for a scripted base already given in milliseconds.
func Millis(base float64, speedFactor int) time.Duration {
	return Scheduled(base/1000, speedFactor)
}

// FreeFall is a ball dropped vertically onto a floor line.
type FreeFall struct {
	Gravity float64
	FloorY  float64
	Scale   float64
}

func NewFreeFall() *FreeFall {
	return &FreeFall{
		Gravity: Gravity,
		FloorY:  FloorY,
		Scale:   Scale,
	}
}

// Height returns the drop height in metres for a ball at pos.
func (f *FreeFall) Height(pos mgl64.Vec2) float64 {
	return (f.FloorY - pos.Y()) / f.Scale
}

// Units returns the fall time in seconds for a ball at pos.
func (f *FreeFall) Units(pos mgl64.Vec2) float64 {
	return FallTime(f.Height(pos), f.Gravity)
}

// Landing returns where a ball dropped from pos comes to rest.
func (f *FreeFall) Landing(pos mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{pos.X(), f.FloorY}
}

func (f *FreeFall) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity": f.Gravity,
		"floor_y": f.FloorY,
		"scale":   f.Scale,
	}
}

func (f *FreeFall) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		f.Gravity = value
	case "floor_y":
		f.FloorY = value
	case "scale":
		f.Scale = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}

// Incline is a ball rolling from rest down a frictionless ramp to its foot.
type Incline struct {
	Gravity float64
	Angle   float64
	Foot    mgl64.Vec2
	Scale   float64
}

func NewIncline() *Incline {
	return &Incline{
		Gravity: Gravity,
		Angle:   math.Pi / 6,
		Foot:    RampFoot,
		Scale:   Scale,
	}
}

// Distance returns the length along the ramp in metres for a ball at pos.
func (r *Incline) Distance(pos mgl64.Vec2) float64 {
	return pos.Sub(r.Foot).Len() / r.Scale
}

func (r *Incline) Units(pos mgl64.Vec2) float64 {
	return InclineTime(r.Distance(pos), r.Gravity, r.Angle)
}

func (r *Incline) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity": r.Gravity,
		"angle":   r.Angle,
		"foot_x":  r.Foot.X(),
		"foot_y":  r.Foot.Y(),
		"scale":   r.Scale,
	}
}

func (r *Incline) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		r.Gravity = value
	case "angle":
		r.Angle = value
	case "foot_x":
		r.Foot[0] = value
	case "foot_y":
		r.Foot[1] = value
	case "scale":
		r.Scale = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}
