package anim

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

// InCubic starts slowly and accelerates, like a ball released from rest.
func InCubic(t float64) float64 { return t * t * t }

// Motion is a straight-line interpolation between two scene positions.
// Position is a pure function of elapsed time.
type Motion struct {
	Start    mgl64.Vec2
	End      mgl64.Vec2
	Duration time.Duration
	Easing   Easing
}

func NewMotion(start, end mgl64.Vec2, d time.Duration) Motion {
	return Motion{Start: start, End: end, Duration: d, Easing: InCubic}
}

// Progress returns linear progress in [0,1] after elapsed.
func (m Motion) Progress(elapsed time.Duration) float64 {
	if m.Duration <= 0 || elapsed >= m.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(m.Duration)
}

func (m Motion) PositionAt(elapsed time.Duration) mgl64.Vec2 {
	ease := m.Easing
	if ease == nil {
		ease = InCubic
	}
	k := ease(m.Progress(elapsed))
	return m.Start.Add(m.End.Sub(m.Start).Mul(k))
}

// WithDuration returns a copy of m running for d.
func (m Motion) WithDuration(d time.Duration) Motion {
	m.Duration = d
	return m
}
