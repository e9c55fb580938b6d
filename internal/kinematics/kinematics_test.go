package kinematics

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFallTime(t *testing.T) {
	tests := []struct {
		name string
		h    float64
		want float64
	}{
		{"zero height clamps", 0, 1},
		{"negative height clamps", -0.3, 1},
		{"one second", 4.905, 1},
		{"half metre", 0.5, math.Sqrt(1 / 9.81)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallTime(tt.h, Gravity)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("FallTime(%v) = %v, want %v", tt.h, got, tt.want)
			}
			if got <= 0 {
				t.Errorf("FallTime(%v) must be positive, got %v", tt.h, got)
			}
		})
	}
}

func TestInclineTime(t *testing.T) {
	// sin 30° = 0.5, so d = g/4 takes exactly one second.
	got := InclineTime(Gravity/4, Gravity, math.Pi/6)
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("expected 1s, got %v", got)
	}

	if InclineTime(0, Gravity, math.Pi/6) != 1 {
		t.Error("zero distance should clamp to 1")
	}
}

func TestSpeedFactor(t *testing.T) {
	tests := []struct {
		raw, want int
	}{
		{1, 10},
		{2, 8},
		{5, 5},
		{9, 1},
		{10, 1},
		{0, 10},
		{42, 1},
	}

	for _, tt := range tests {
		if got := SpeedFactor(tt.raw); got != tt.want {
			t.Errorf("SpeedFactor(%d) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestScheduled(t *testing.T) {
	if got := Scheduled(1, 1); got != time.Second {
		t.Errorf("Scheduled(1, 1) = %v, want 1s", got)
	}
	if got := Scheduled(0.5, 4); got != 2*time.Second {
		t.Errorf("Scheduled(0.5, 4) = %v, want 2s", got)
	}
	if got := Millis(320, 2); got != 640*time.Millisecond {
		t.Errorf("Millis(320, 2) = %v, want 640ms", got)
	}
}

func TestFreeFallFromScenePosition(t *testing.T) {
	ff := NewFreeFall()

	// One metre above the floor.
	ball := mgl64.Vec2{0, FloorY - Scale}
	if h := ff.Height(ball); math.Abs(h-1) > 1e-12 {
		t.Errorf("expected height 1m, got %v", h)
	}
	want := math.Sqrt(2 / Gravity)
	if u := ff.Units(ball); math.Abs(u-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, u)
	}

	land := ff.Landing(mgl64.Vec2{42, 10})
	if land.X() != 42 || land.Y() != FloorY {
		t.Errorf("unexpected landing point %v", land)
	}

	if ff.Units(mgl64.Vec2{0, FloorY}) != 1 {
		t.Error("ball on the floor should clamp to 1")
	}
}

func TestInclineFromScenePosition(t *testing.T) {
	r := NewIncline()

	ball := RampFoot.Add(mgl64.Vec2{3 * Scale / 5, -4 * Scale / 5})
	if d := r.Distance(ball); math.Abs(d-1) > 1e-12 {
		t.Errorf("expected distance 1m, got %v", d)
	}
	want := math.Sqrt(2 / (Gravity * 0.5))
	if u := r.Units(ball); math.Abs(u-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, u)
	}
}

func TestParams(t *testing.T) {
	ff := NewFreeFall()
	if err := ff.SetParam("gravity", 1.62); err != nil {
		t.Fatalf("SetParam failed: %v", err)
	}
	if ff.GetParams()["gravity"] != 1.62 {
		t.Error("gravity not updated")
	}
	if err := ff.SetParam("mass", 1); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}

	r := NewIncline()
	if err := r.SetParam("foot_x", 5); err != nil {
		t.Fatalf("SetParam failed: %v", err)
	}
	if r.Foot.X() != 5 {
		t.Errorf("expected foot x 5, got %v", r.Foot.X())
	}
	if err := r.SetParam("friction", 0.2); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}
